// Package metrics implements the binning and divergence primitives behind
// drift scoring. Every function is pure: configuration (bin counts, epsilon
// floors) comes in as parameters, never from package state.
package metrics

import (
	"math"
	"sort"
)

// Quantile returns the p-quantile (p in [0,1]) of values using linear
// interpolation between closest ranks (the type-7 estimator, the default in
// most tabular tooling). Neither montanaflynn/stats nor gonum's stat.Quantile
// variants implement type 7, so it is computed directly here.
func Quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return quantileSorted(sorted, p)
}

// quantileSorted computes the type-7 quantile of an ascending slice
func quantileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	frac := h - float64(lo)
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// QuantileEdges computes bin edges from the reference distribution's own
// quantiles: bins+1 evenly spaced quantile positions in [0,1], deduplicated
// monotonically. The reference must contain only finite values. Fewer than 3
// surviving edges means the reference is too flat to support a histogram;
// callers treat that as a degenerate case.
func QuantileEdges(reference []float64, bins int) []float64 {
	if len(reference) == 0 || bins < 1 {
		return nil
	}
	sorted := make([]float64, len(reference))
	copy(sorted, reference)
	sort.Float64s(sorted)

	edges := make([]float64, 0, bins+1)
	for i := 0; i <= bins; i++ {
		q := quantileSorted(sorted, float64(i)/float64(bins))
		if len(edges) == 0 || q > edges[len(edges)-1] {
			edges = append(edges, q)
		}
	}
	return edges
}

// finite returns a copy of values with NaN and infinities dropped
func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
