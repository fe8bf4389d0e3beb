package metrics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivergence_IdenticalInputs(t *testing.T) {
	x := []float64{1, 2, 2, 3, 5, 8, 13}
	assert.Zero(t, Divergence(x, x, 20, DefaultDensityFloor))
}

func TestDivergence_SharedConstant(t *testing.T) {
	// Both arrays a single constant value: degenerate range, identical by
	// definition
	x := []float64{4, 4, 4}
	y := []float64{4, 4, 4, 4, 4}
	assert.Zero(t, Divergence(x, y, 20, DefaultDensityFloor))
}

func TestDivergence_EmptyAfterCleaning(t *testing.T) {
	x := []float64{1, 2, 3}
	assert.True(t, math.IsNaN(Divergence(x, nil, 20, DefaultDensityFloor)))
	assert.True(t, math.IsNaN(Divergence([]float64{math.NaN()}, x, 20, DefaultDensityFloor)))
}

func TestDivergence_Symmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	x := make([]float64, 400)
	y := make([]float64, 400)
	for i := range x {
		x[i] = rng.NormFloat64()
		y[i] = rng.NormFloat64()*2 + 1
	}

	forward := Divergence(x, y, 20, DefaultDensityFloor)
	backward := Divergence(y, x, 20, DefaultDensityFloor)
	assert.InDelta(t, forward, backward, 1e-12)
}

func TestDivergence_NonNegativeAndBounded(t *testing.T) {
	// Fully disjoint supports push the divergence toward its ln 2 ceiling
	x := []float64{0, 0.1, 0.2, 0.3}
	y := []float64{100, 100.1, 100.2, 100.3}

	got := Divergence(x, y, 20, DefaultDensityFloor)
	require.False(t, math.IsNaN(got))
	assert.Greater(t, got, 0.0)
	assert.LessOrEqual(t, got, math.Ln2+1e-9)
}

func TestDivergence_MonotoneInNoiseMagnitude(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	baseline := make([]float64, 1000)
	small := make([]float64, 1000)
	large := make([]float64, 1000)
	for i := range baseline {
		baseline[i] = rng.Float64()
		small[i] = baseline[i] + rng.NormFloat64()*0.01
		large[i] = baseline[i] + rng.NormFloat64()*1.0
	}

	jsdSmall := Divergence(baseline, small, 20, DefaultDensityFloor)
	jsdLarge := Divergence(baseline, large, 20, DefaultDensityFloor)

	assert.Greater(t, jsdLarge, jsdSmall)
}
