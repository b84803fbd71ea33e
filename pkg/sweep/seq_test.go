package sweep

import (
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProduct_RowMajor(t *testing.T) {
	sets := slices.Collect(Product(
		Domain{Name: "a", Values: []any{1, 2}},
		Domain{Name: "b", Values: []any{"x", "y", "z"}},
	))

	require.Equal(t, []ParameterSet{
		{"a": 1, "b": "x"}, {"a": 1, "b": "y"}, {"a": 1, "b": "z"},
		{"a": 2, "b": "x"}, {"a": 2, "b": "y"}, {"a": 2, "b": "z"},
	}, sets)
}

func TestProduct_EmptyDomain(t *testing.T) {
	sets := slices.Collect(Product(
		Domain{Name: "a", Values: []any{1, 2}},
		Domain{Name: "b"},
	))
	require.Empty(t, sets)
}

func TestPin(t *testing.T) {
	sets := slices.Collect(Pin(
		Product(Domain{Name: "a", Values: []any{1, 2}}),
		ParameterSet{"fixed": 0.5},
	))

	require.Equal(t, []ParameterSet{{"a": 1, "fixed": 0.5}, {"a": 2, "fixed": 0.5}}, sets)
}

func counting(n int, pulled *int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < n; i++ {
			*pulled++
			if !yield(i) {
				return
			}
		}
	}
}

func TestTake(t *testing.T) {
	var pulled int
	got := slices.Collect(Take(counting(10, &pulled), 3))

	require.Equal(t, []int{0, 1, 2}, got)
	require.Equal(t, 3, pulled, "take must not pull past its limit")

	pulled = 0
	require.Equal(t, []int{0, 1}, slices.Collect(Take(counting(2, &pulled), 5)))

	pulled = 0
	require.Empty(t, slices.Collect(Take(counting(10, &pulled), 0)))
	require.Empty(t, slices.Collect(Take(counting(10, &pulled), -4)))
	require.Zero(t, pulled)
}

func TestTake_EarlyBreak(t *testing.T) {
	var pulled int
	for v := range Take(counting(10, &pulled), 5) {
		if v == 1 {
			break
		}
	}
	require.Equal(t, 2, pulled)
}
