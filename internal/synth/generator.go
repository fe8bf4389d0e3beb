// Package synth generates feature tables for demos and test fixtures. All
// randomness flows from a caller-supplied seed; the drift engine itself never
// draws random numbers.
package synth

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"driftscope/domain/table"
)

// Generator synthesizes shaped feature columns from a seeded source
type Generator struct {
	src *rand.PCG
}

// NewGenerator creates a generator. The same seed always yields the same
// sequence of tables.
func NewGenerator(seed uint64) *Generator {
	return &Generator{src: rand.NewPCG(seed, seed+1)}
}

// Baseline builds a table of the given shape: shaped numeric feature columns
// plus a binary label column. Feature shapes rotate through uniform, normal,
// and lognormal so quantile bins see realistic variety.
func (g *Generator) Baseline(rows, features int, label string) (*table.Table, error) {
	columns := make(map[string]table.Column, features+1)

	for f := 0; f < features; f++ {
		values := make([]float64, rows)
		switch f % 3 {
		case 0:
			dist := distuv.Uniform{Min: 0, Max: 1, Src: g.src}
			for i := range values {
				values[i] = dist.Rand()
			}
		case 1:
			dist := distuv.Normal{Mu: 30, Sigma: 10, Src: g.src}
			for i := range values {
				values[i] = dist.Rand()
			}
		default:
			dist := distuv.LogNormal{Mu: 3, Sigma: 0.5, Src: g.src}
			for i := range values {
				values[i] = dist.Rand()
			}
		}
		columns[fmt.Sprintf("feature_%02d", f)] = table.NumericColumn(values)
	}

	labels := make([]float64, rows)
	coin := distuv.Bernoulli{P: 0.5, Src: g.src}
	for i := range labels {
		labels[i] = coin.Rand()
	}
	columns[label] = table.NumericColumn(labels)

	return table.New(columns)
}

// GaussianVariant returns a copy of src with zero-mean gaussian noise of the
// given standard deviation added to every numeric column except the label.
// A non-positive std returns the input unchanged. Missing cells stay missing.
func (g *Generator) GaussianVariant(src *table.Table, std float64, label string) (*table.Table, error) {
	if std <= 0 {
		return src, nil
	}

	noise := distuv.Normal{Mu: 0, Sigma: std, Src: g.src}
	columns := make(map[string]table.Column, len(src.ColumnNames()))
	for _, name := range src.ColumnNames() {
		col, _ := src.Column(name)
		if name == label || !col.IsNumeric() {
			columns[name] = col
			continue
		}
		values := make([]float64, len(col.Numbers))
		for i, v := range col.Numbers {
			values[i] = v + noise.Rand() // NaN cells stay NaN
		}
		columns[name] = table.NumericColumn(values)
	}

	return table.New(columns)
}
