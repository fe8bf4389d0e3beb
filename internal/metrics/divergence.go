package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultDensityFloor guards histogram normalization and the JSD log terms
const DefaultDensityFloor = 1e-12

// Divergence computes the Jensen-Shannon divergence between x and y using
// equal-width histograms over their combined range. Symmetric in x and y up
// to the shared-edge construction, bounded, and zero when both arrays produce
// identical normalized histograms.
//
// Returns NaN when either input has no finite values, and 0.0 when both
// arrays collapse to the same single constant value.
func Divergence(x, y []float64, bins int, floor float64) float64 {
	xs := finite(x)
	ys := finite(y)
	if len(xs) == 0 || len(ys) == 0 {
		return math.NaN()
	}

	lo := math.Min(floats.Min(xs), floats.Min(ys))
	hi := math.Max(floats.Max(xs), floats.Max(ys))
	if lo == hi {
		return 0.0
	}

	p := densityHistogram(xs, lo, hi, bins, floor)
	q := densityHistogram(ys, lo, hi, bins, floor)
	return jensenShannon(p, q, floor)
}

// densityHistogram bins values into equal-width bins spanning [lo, hi],
// density-normalizes, then re-normalizes to sum to 1 with a floor guard
// against a zero-sum histogram.
func densityHistogram(values []float64, lo, hi float64, bins int, floor float64) []float64 {
	width := (hi - lo) / float64(bins)
	counts := make([]float64, bins)
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx < 0 {
			idx = 0
		}
		if idx >= bins {
			idx = bins - 1 // hi itself closes the last bin
		}
		counts[idx]++
	}

	total := float64(len(values))
	sum := 0.0
	for i := range counts {
		counts[i] = counts[i] / (total * width)
		sum += counts[i]
	}
	if sum < floor {
		sum = floor
	}
	for i := range counts {
		counts[i] /= sum
	}
	return counts
}

// jensenShannon computes 0.5*(KL(p||m) + KL(q||m)) with m the elementwise
// midpoint, after clipping p and q into [floor, 1]
func jensenShannon(p, q []float64, floor float64) float64 {
	klP, klQ := 0.0, 0.0
	for i := range p {
		pi := clip(p[i], floor)
		qi := clip(q[i], floor)
		m := 0.5 * (pi + qi)
		klP += pi * math.Log(pi/m)
		klQ += qi * math.Log(qi/m)
	}
	return 0.5 * (klP + klQ)
}

func clip(v, floor float64) float64 {
	if v < floor {
		return floor
	}
	if v > 1 {
		return 1
	}
	return v
}
