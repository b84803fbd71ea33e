package metric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat64s(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 3}, Float64s([]int{1, 2, 3}))
	assert.Empty(t, Float64s([]int64{}))
}

func TestBetween(t *testing.T) {
	assert.True(t, Between(1, 1, 100))
	assert.True(t, Between(100, 1, 100))
	assert.False(t, Between(101, 1, 100))
	assert.False(t, Between(0, 1, 100))
}

func TestMeanMedian(t *testing.T) {
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-9)
	assert.True(t, math.IsNaN(Mean(nil)))

	assert.Equal(t, 3.0, Median([]float64{5, 1, 3}))
	assert.True(t, math.IsNaN(Median(nil)))
}

func TestMeanMedian_SkipsNaN(t *testing.T) {
	nan := math.NaN()
	assert.InDelta(t, 2.0, Mean([]float64{1, nan, 3}), 1e-9)
	assert.Equal(t, 3.0, Median([]float64{nan, 5, 1, 3}))
	assert.True(t, math.IsNaN(Mean([]float64{nan, nan})))
	assert.True(t, math.IsInf(Mean([]float64{1, math.Inf(1)}), 1))
}

func TestFinite(t *testing.T) {
	values := []float64{1, math.NaN(), math.Inf(1), 2, math.Inf(-1)}
	assert.Equal(t, []float64{1, 2}, Finite(values))
	assert.Empty(t, Finite([]float64{math.NaN()}))
}

func TestArgMax(t *testing.T) {
	assert.Equal(t, 1, ArgMax([]float64{1, 7, 7, 2}))
	assert.Equal(t, -1, ArgMax(nil))
	assert.Equal(t, 2, ArgMax([]float64{math.NaN(), 1, 3}))
	assert.Equal(t, 1, ArgMax([]float64{1, math.Inf(1), math.NaN()}))
	assert.Equal(t, -1, ArgMax([]float64{math.NaN(), math.NaN()}))
}

func TestBootstrap(t *testing.T) {
	calls := 0
	interval := Bootstrap([]float64{1.5, 1.5, 1.5}, Mean, 200, 0.95, func() { calls++ })

	require.Equal(t, 200, calls)
	assert.InDelta(t, 1.5, interval.Mean, 1e-9)
	assert.InDelta(t, 1.5, interval.Lower, 1e-9)
	assert.InDelta(t, 1.5, interval.Upper, 1e-9)
	assert.InDelta(t, 0, interval.StdDev, 1e-9)
}

func TestBootstrap_Bounds(t *testing.T) {
	values := []float64{0.8, 1.1, 1.4, 2.0, 0.9, 1.7}
	interval := Bootstrap(values, Mean, 500, 0.9, nil)

	assert.LessOrEqual(t, interval.Lower, interval.Mean)
	assert.LessOrEqual(t, interval.Mean, interval.Upper)
	assert.GreaterOrEqual(t, interval.Lower, 0.8)
	assert.LessOrEqual(t, interval.Upper, 2.0)
}

func TestBootstrap_SkipsNonFinite(t *testing.T) {
	values := []float64{2, math.NaN(), 2, math.Inf(1)}
	interval := Bootstrap(values, Mean, 50, 0.95, nil)
	assert.Equal(t, 2.0, interval.Mean)
	assert.Equal(t, 2.0, interval.Upper)

	assert.Zero(t, Bootstrap([]float64{math.NaN(), math.Inf(-1)}, Mean, 50, 0.95, nil))
}

func TestBootstrap_Empty(t *testing.T) {
	assert.Equal(t, BootstrapInterval{}, Bootstrap(nil, Mean, 100, 0.95, nil))
}
