// Package quality compares schemas and null rates between a baseline and a
// production feature table.
package quality

import (
	"sort"

	"github.com/montanaflynn/stats"

	"driftscope/domain/drift"
	"driftscope/domain/table"
)

// Compare computes the schema intersection, the symmetric difference, and the
// per-table null rates restricted to the common columns. With no common
// columns the null rates are 0.0 by convention, keeping downstream aggregates
// clean rather than propagating NaN.
func Compare(baseline, production *table.Table) drift.QualityResult {
	common := CommonColumns(baseline, production)

	return drift.QualityResult{
		CommonColumns:         len(common),
		MissingOrExtraColumns: symmetricDifference(baseline, production),
		BaselineNullRate:      nullRate(baseline, common),
		ProductionNullRate:    nullRate(production, common),
	}
}

// CommonColumns returns the sorted intersection of column names
func CommonColumns(baseline, production *table.Table) []string {
	common := make([]string, 0)
	for _, name := range baseline.ColumnNames() {
		if production.HasColumn(name) {
			common = append(common, name)
		}
	}
	sort.Strings(common)
	return common
}

// symmetricDifference returns the sorted names present in exactly one table
func symmetricDifference(baseline, production *table.Table) []string {
	diff := make([]string, 0)
	for _, name := range baseline.ColumnNames() {
		if !production.HasColumn(name) {
			diff = append(diff, name)
		}
	}
	for _, name := range production.ColumnNames() {
		if !baseline.HasColumn(name) {
			diff = append(diff, name)
		}
	}
	sort.Strings(diff)
	return diff
}

// nullRate computes the mean, over the given columns, of each column's
// missing-cell rate
func nullRate(t *table.Table, columns []string) float64 {
	if len(columns) == 0 || t.Rows() == 0 {
		return 0.0
	}

	rates := make([]float64, 0, len(columns))
	for _, name := range columns {
		col, ok := t.Column(name)
		if !ok {
			continue
		}
		rates = append(rates, float64(col.MissingCount())/float64(t.Rows()))
	}

	mean, err := stats.Mean(rates)
	if err != nil {
		return 0.0
	}
	return mean
}
