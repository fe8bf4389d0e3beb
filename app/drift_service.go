// Package app wires the quality comparator and the drift aggregator into the
// single comparison entrypoint handed to callers.
package app

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"driftscope/domain/drift"
	"driftscope/domain/table"
	"driftscope/internal"
	"driftscope/internal/config"
	"driftscope/internal/errors"
	"driftscope/internal/metrics"
	"driftscope/internal/quality"
)

// DriftService runs a full baseline vs production comparison
type DriftService struct {
	bins    int
	label   string
	workers int
	log     *internal.Logger
}

// NewDriftService creates a drift service from configuration
func NewDriftService(cfg config.DriftConfig, logger *internal.Logger) *DriftService {
	if cfg.Bins < 1 {
		cfg.Bins = 10
	}
	if cfg.LabelColumn == "" {
		cfg.LabelColumn = "label"
	}
	if cfg.Workers < 1 {
		cfg.Workers = 4
	}
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &DriftService{
		bins:    cfg.Bins,
		label:   cfg.LabelColumn,
		workers: cfg.Workers,
		log:     logger,
	}
}

// Compare scores distribution shift and data-quality deltas between the two
// tables and assembles the report. The label column must exist in the
// baseline table; a missing label is a contract violation and fails before
// any computation. Per-feature degenerate inputs never abort the comparison.
func (s *DriftService) Compare(ctx context.Context, baseline, production *table.Table) (*drift.DriftReport, error) {
	if baseline == nil || production == nil {
		return nil, errors.InvalidInput("baseline and production tables are required")
	}
	if !baseline.HasColumn(s.label) {
		return nil, errors.ContractViolation(fmt.Sprintf("baseline table is missing the %q column", s.label))
	}

	qualityResult := quality.Compare(baseline, production)
	summary, err := s.aggregateDrift(ctx, baseline, production)
	if err != nil {
		return nil, err
	}

	s.log.Info("compared %d baseline rows against %d production rows: %d numeric features, psi_mean=%v",
		baseline.Rows(), production.Rows(), summary.NumNumericFeatures, summary.PSIMean)

	report := drift.NewDriftReport(baseline.Rows(), production.Rows(), qualityResult, summary)
	return &report, nil
}

// aggregateDrift scores every shared numeric feature and aggregates the
// finite results. Features are scored in sorted-name order into a
// preallocated slice, so the bounded fan-out never affects output order.
func (s *DriftService) aggregateDrift(ctx context.Context, baseline, production *table.Table) (drift.Summary, error) {
	features := s.numericFeatures(baseline, production)
	jsdBins := s.bins * 2
	if jsdBins < 10 {
		jsdBins = 10
	}

	results := make([]drift.FeatureDrift, len(features))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, name := range features {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			baseVals := numericValues(baseline, name)
			prodVals := numericValues(production, name)
			results[i] = drift.FeatureDrift{
				PSI: drift.Metric(metrics.PSI(baseVals, prodVals, s.bins, metrics.DefaultEpsilon)),
				JSD: drift.Metric(metrics.Divergence(baseVals, prodVals, jsdBins, metrics.DefaultDensityFloor)),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return drift.Summary{}, errors.Wrap(err, "drift aggregation interrupted")
	}

	perFeature := make(map[string]drift.FeatureDrift, len(features))
	psiValues := make([]float64, 0, len(features))
	jsdValues := make([]float64, 0, len(features))
	for i, name := range features {
		perFeature[name] = results[i]
		if results[i].PSI.IsFinite() {
			psiValues = append(psiValues, float64(results[i].PSI))
		} else {
			s.log.Debug("feature %q has no finite PSI, excluded from aggregates", name)
		}
		if results[i].JSD.IsFinite() {
			jsdValues = append(jsdValues, float64(results[i].JSD))
		}
	}

	psiMean, psiP95 := aggregate(psiValues)
	jsdMean, jsdP95 := aggregate(jsdValues)

	return drift.Summary{
		NumNumericFeatures: len(features),
		PSIMean:            drift.Metric(psiMean),
		PSIP95:             drift.Metric(psiP95),
		JSDMean:            drift.Metric(jsdMean),
		JSDP95:             drift.Metric(jsdP95),
		PerFeature:         perFeature,
	}, nil
}

// numericFeatures returns the sorted shared columns that are numeric-typed in
// the baseline, minus the label column
func (s *DriftService) numericFeatures(baseline, production *table.Table) []string {
	features := make([]string, 0)
	for _, name := range quality.CommonColumns(baseline, production) {
		if name == s.label {
			continue
		}
		col, _ := baseline.Column(name)
		if col.IsNumeric() {
			features = append(features, name)
		}
	}
	sort.Strings(features)
	return features
}

// numericValues extracts a column's numeric payload, or nil when the column
// is absent or not numeric (scored as an empty input, yielding NaN)
func numericValues(t *table.Table, name string) []float64 {
	col, ok := t.Column(name)
	if !ok || !col.IsNumeric() {
		return nil
	}
	return col.Numbers
}

// aggregate computes the finite-only mean and 95th percentile; an empty set
// yields NaN for both
func aggregate(values []float64) (mean, p95 float64) {
	if len(values) == 0 {
		return math.NaN(), math.NaN()
	}
	mean, err := stats.Mean(values)
	if err != nil {
		mean = math.NaN()
	}
	return mean, metrics.Quantile(values, 0.95)
}
