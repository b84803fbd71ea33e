// Package metric holds the small statistical helpers used by the results
// analysis.
package metric

import (
	"math"
	"sort"

	"github.com/samber/lo"
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Number is any value a results column can be averaged over.
type Number interface {
	constraints.Integer | constraints.Float
}

// Float64s converts values to float64.
func Float64s[T Number](values []T) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

// Between reports whether v lies in the inclusive range [low, high].
func Between[T constraints.Ordered](v, low, high T) bool {
	return low <= v && v <= high
}

// Finite drops NaN and infinite values.
func Finite(values []float64) []float64 {
	return lo.Filter(values, func(v float64, _ int) bool {
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	})
}

func dropNaN(values []float64) []float64 {
	return lo.Reject(values, func(v float64, _ int) bool { return math.IsNaN(v) })
}

// Mean calculates the arithmetic mean of the values, skipping NaN. It
// returns NaN when nothing is left.
func Mean(values []float64) float64 {
	values = dropNaN(values)
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}

// Median returns the 50% quantile of the values, skipping NaN. It returns
// NaN when nothing is left.
func Median(values []float64) float64 {
	sorted := dropNaN(values)
	if len(sorted) == 0 {
		return math.NaN()
	}
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// ArgMax returns the index of the first largest value, ignoring NaN, or -1
// when there is no such value.
func ArgMax(values []float64) int {
	if len(values) == 0 || lo.EveryBy(values, math.IsNaN) {
		return -1
	}
	return floats.MaxIdx(values)
}
