package app

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftscope/domain/table"
	"driftscope/internal"
	"driftscope/internal/config"
	"driftscope/internal/errors"
)

func newTestService() *DriftService {
	return NewDriftService(config.DriftConfig{Bins: 10, LabelColumn: "label", Workers: 4},
		internal.NewLogger(internal.LogLevelError))
}

func numericTable(t *testing.T, columns map[string][]float64) *table.Table {
	t.Helper()
	cols := make(map[string]table.Column, len(columns))
	for name, values := range columns {
		cols[name] = table.NumericColumn(values)
	}
	tbl, err := table.New(cols)
	require.NoError(t, err)
	return tbl
}

func TestCompare_IdenticalTables(t *testing.T) {
	tbl := numericTable(t, map[string][]float64{
		"x":     {1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		"label": {0, 1, 0, 1, 0, 1, 0, 1, 0, 1},
	})

	report, err := newTestService().Compare(context.Background(), tbl, tbl)
	require.NoError(t, err)

	assert.Equal(t, 10, report.BaselineRows)
	assert.Equal(t, 10, report.ProductionRows)
	assert.Equal(t, 2, report.Quality.CommonColumns)
	assert.Empty(t, report.Quality.MissingOrExtraColumns)

	assert.Equal(t, 1, report.Drift.NumNumericFeatures)
	assert.Zero(t, float64(report.Drift.PSIMean))
	assert.Zero(t, float64(report.Drift.JSDMean))

	// The label is excluded from scoring even though it is numeric
	require.Contains(t, report.Drift.PerFeature, "x")
	assert.NotContains(t, report.Drift.PerFeature, "label")
}

func TestCompare_SchemaMismatchScoresSharedFeaturesOnly(t *testing.T) {
	baseline := numericTable(t, map[string][]float64{
		"a":     {1, 2, 3, 4},
		"b":     {5, 6, 7, 8},
		"label": {0, 1, 0, 1},
	})
	production := numericTable(t, map[string][]float64{
		"a":     {1, 2, 3, 4},
		"c":     {5, 6, 7, 8},
		"label": {0, 1, 0, 1},
	})

	report, err := newTestService().Compare(context.Background(), baseline, production)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Quality.CommonColumns)
	assert.Equal(t, []string{"b", "c"}, report.Quality.MissingOrExtraColumns)
	assert.Len(t, report.Drift.PerFeature, 1)
	assert.Contains(t, report.Drift.PerFeature, "a")
}

func TestCompare_EmptyNumericOverlap(t *testing.T) {
	baseline := numericTable(t, map[string][]float64{
		"x":     {1, 2, 3},
		"label": {0, 1, 0},
	})
	production := numericTable(t, map[string][]float64{
		"y":     {1, 2, 3},
		"label": {0, 1, 0},
	})

	report, err := newTestService().Compare(context.Background(), baseline, production)
	require.NoError(t, err)

	// No shared numeric features: aggregates are NaN, reported as such
	assert.Equal(t, 0, report.Drift.NumNumericFeatures)
	assert.True(t, math.IsNaN(float64(report.Drift.PSIMean)))
	assert.True(t, math.IsNaN(float64(report.Drift.JSDMean)))
	assert.Empty(t, report.Drift.PerFeature)
}

func TestCompare_AllNaNProductionColumnExcludedFromAggregates(t *testing.T) {
	nan := math.NaN()
	baseline := numericTable(t, map[string][]float64{
		"a":     {1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		"b":     {1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		"label": {0, 1, 0, 1, 0, 1, 0, 1, 0, 1},
	})
	production := numericTable(t, map[string][]float64{
		"a":     {1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		"b":     {nan, nan, nan, nan, nan, nan, nan, nan, nan, nan},
		"label": {0, 1, 0, 1, 0, 1, 0, 1, 0, 1},
	})

	report, err := newTestService().Compare(context.Background(), baseline, production)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Drift.NumNumericFeatures)
	assert.True(t, math.IsNaN(float64(report.Drift.PerFeature["b"].PSI)))
	assert.True(t, math.IsNaN(float64(report.Drift.PerFeature["b"].JSD)))

	// Aggregates come from the one finite feature, not polluted by NaN
	assert.Zero(t, float64(report.Drift.PSIMean))
	assert.Zero(t, float64(report.Drift.JSDMean))
}

func TestCompare_CategoricalColumnsNotScored(t *testing.T) {
	baseline, err := table.New(map[string]table.Column{
		"a":      table.NumericColumn([]float64{1, 2, 3, 4}),
		"region": table.CategoricalColumn([]string{"east", "west", "east", "west"}),
		"label":  table.NumericColumn([]float64{0, 1, 0, 1}),
	})
	require.NoError(t, err)

	report, err := newTestService().Compare(context.Background(), baseline, baseline)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Drift.NumNumericFeatures)
	assert.Contains(t, report.Drift.PerFeature, "a")
	assert.NotContains(t, report.Drift.PerFeature, "region")
}

func TestCompare_MissingLabelFailsFast(t *testing.T) {
	baseline := numericTable(t, map[string][]float64{"a": {1, 2, 3}})
	production := numericTable(t, map[string][]float64{
		"a":     {1, 2, 3},
		"label": {0, 1, 0},
	})

	_, err := newTestService().Compare(context.Background(), baseline, production)
	require.Error(t, err)
	assert.Equal(t, errors.CodeContractViolation, errors.GetCode(err))
}

func TestCompare_NilTables(t *testing.T) {
	tbl := numericTable(t, map[string][]float64{"label": {0, 1}})

	_, err := newTestService().Compare(context.Background(), nil, tbl)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = newTestService().Compare(context.Background(), tbl, nil)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestCompare_DeterministicUnderParallelism(t *testing.T) {
	columns := map[string][]float64{"label": make([]float64, 200)}
	for _, name := range []string{"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8"} {
		values := make([]float64, 200)
		for i := range values {
			values[i] = float64(i) * float64(len(name))
		}
		columns[name] = values
	}
	baseline := numericTable(t, columns)

	svc := newTestService()
	first, err := svc.Compare(context.Background(), baseline, baseline)
	require.NoError(t, err)
	second, err := svc.Compare(context.Background(), baseline, baseline)
	require.NoError(t, err)

	assert.Equal(t, first.Drift.PerFeature, second.Drift.PerFeature)
	assert.Equal(t, first.Drift.PSIMean, second.Drift.PSIMean)
}
