// Package drift defines the report value objects produced by a baseline vs
// production comparison. The DriftReport JSON layout is the boundary contract
// consumed by downstream persistence and logging collaborators.
package drift

import (
	"bytes"
	"math"
	"strconv"
	"time"

	"driftscope/domain/core"
)

// Metric is a float64 whose JSON rendering encodes non-finite values as null.
// encoding/json rejects NaN and infinities outright; null is the portable
// rendering and unmarshals back to NaN.
type Metric float64

// IsFinite reports whether the metric carries a usable value
func (m Metric) IsFinite() bool {
	f := float64(m)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// MarshalJSON implements json.Marshaler
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.IsFinite() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(m), 'g', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Metric) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*m = Metric(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*m = Metric(f)
	return nil
}

// FeatureDrift holds the per-feature drift scores. Both scores are NaN when
// the feature had no finite values in either table.
type FeatureDrift struct {
	PSI Metric `json:"psi"`
	JSD Metric `json:"jsd"`
}

// QualityResult compares schemas and null rates between the two tables
type QualityResult struct {
	CommonColumns         int      `json:"common_columns"`
	MissingOrExtraColumns []string `json:"missing_or_extra_columns"`
	BaselineNullRate      float64  `json:"baseline_null_rate"`
	ProductionNullRate    float64  `json:"production_null_rate"`
}

// Summary aggregates per-feature drift scores. Aggregates are computed only
// over finite per-feature values; when none are finite they are NaN, and the
// JSON rendering reports null rather than coercing to zero.
type Summary struct {
	NumNumericFeatures int                     `json:"num_numeric_features"`
	PSIMean            Metric                  `json:"psi_mean"`
	PSIP95             Metric                  `json:"psi_p95"`
	JSDMean            Metric                  `json:"jsd_mean"`
	JSDP95             Metric                  `json:"jsd_p95"`
	PerFeature         map[string]FeatureDrift `json:"per_feature"`
}

// DriftReport is the complete comparison result: dataset metadata, quality
// deltas, and the drift aggregate. Constructed once per comparison, never
// mutated.
type DriftReport struct {
	BaselineRows   int           `json:"baseline_rows"`
	ProductionRows int           `json:"production_rows"`
	Quality        QualityResult `json:"quality"`
	Drift          Summary       `json:"drift"`
}

// NewDriftReport composes row counts, the quality result, and the drift
// summary into one report. Pure structural merge, no computation.
func NewDriftReport(baselineRows, productionRows int, quality QualityResult, summary Summary) DriftReport {
	return DriftReport{
		BaselineRows:   baselineRows,
		ProductionRows: productionRows,
		Quality:        quality,
		Drift:          summary,
	}
}

// ReportRecord is the persistence envelope for a DriftReport. The report body
// stays the boundary document; the envelope adds storage identity only.
type ReportRecord struct {
	ID        core.ReportID `json:"id"`
	Bins      int           `json:"bins"`
	Report    DriftReport   `json:"report"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewReportRecord wraps a report for persistence
func NewReportRecord(report DriftReport, bins int) *ReportRecord {
	return &ReportRecord{
		ID:        core.ReportID(core.NewID()),
		Bins:      bins,
		Report:    report,
		CreatedAt: time.Now().UTC(),
	}
}
