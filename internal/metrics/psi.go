package metrics

import (
	"math"
	"sort"
)

// DefaultEpsilon is the proportion floor applied before the PSI log term
const DefaultEpsilon = 1e-6

// PSI computes the Population Stability Index of current against reference
// using quantile bin edges derived from the cleaned reference. It is
// directional: the reference is fixed and current is compared against it.
//
// Returns NaN when either input has no finite values, and 0.0 when the
// reference cannot support at least 3 distinct quantile edges (a near-constant
// reference offers no distributional resolution, which is treated as no
// drift rather than an error).
func PSI(reference, current []float64, bins int, eps float64) float64 {
	ref := finite(reference)
	cur := finite(current)
	if len(ref) == 0 || len(cur) == 0 {
		return math.NaN()
	}

	edges := QuantileEdges(ref, bins)
	if len(edges) < 3 {
		return 0.0
	}

	refPct := proportions(countBins(ref, edges), eps)
	curPct := proportions(countBins(cur, edges), eps)

	sum := 0.0
	for i := range refPct {
		sum += (curPct[i] - refPct[i]) * math.Log(curPct[i]/refPct[i])
	}
	return sum
}

// countBins assigns each value to a bin bounded by edges. Bins are
// left-inclusive with the last bin closed on both sides; values below the
// first edge or above the last land in the nearest boundary bin.
func countBins(values []float64, edges []float64) []int {
	n := len(edges) - 1
	counts := make([]int, n)
	for _, v := range values {
		counts[bucket(edges, v, n)]++
	}
	return counts
}

func bucket(edges []float64, v float64, n int) int {
	if v <= edges[0] {
		return 0
	}
	if v >= edges[n] {
		return n - 1
	}
	// first edge >= v; v on an interior edge opens that edge's bin
	idx := sort.SearchFloat64s(edges, v)
	if edges[idx] == v {
		return idx
	}
	return idx - 1
}

// proportions converts counts to clipped proportions in [eps, 1]. A zero
// total yields zero-proportion bins before clipping, avoiding division by
// zero.
func proportions(counts []int, eps float64) []float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total < 1 {
		total = 1
	}

	pct := make([]float64, len(counts))
	for i, c := range counts {
		p := float64(c) / float64(total)
		if p < eps {
			p = eps
		}
		if p > 1 {
			p = 1
		}
		pct[i] = p
	}
	return pct
}
