package sweep

import (
	"iter"

	"github.com/samber/lo"
)

// Product yields the Cartesian product of domains in row-major order: the
// first domain varies slowest. Any empty domain makes the product empty.
func Product(domains ...Domain) iter.Seq[ParameterSet] {
	return func(yield func(ParameterSet) bool) {
		product(domains, ParameterSet{}, yield)
	}
}

func product(domains []Domain, acc ParameterSet, yield func(ParameterSet) bool) bool {
	if len(domains) == 0 {
		return yield(lo.Assign(acc))
	}

	head := domains[0]
	for _, value := range head.Values {
		acc[head.Name] = value
		if !product(domains[1:], acc, yield) {
			return false
		}
	}
	return true
}

// Pin overlays fixed values on every set produced by seq.
func Pin(seq iter.Seq[ParameterSet], pins ParameterSet) iter.Seq[ParameterSet] {
	return func(yield func(ParameterSet) bool) {
		for set := range seq {
			if !yield(lo.Assign(set, pins)) {
				return
			}
		}
	}
}

// Take stops seq after n elements. It never pulls the element past the
// limit, so a truncated sweep ends exactly where the budget runs out.
func Take[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if n <= 0 {
			return
		}

		taken := 0
		for v := range seq {
			if !yield(v) {
				return
			}
			taken++
			if taken >= n {
				return
			}
		}
	}
}
