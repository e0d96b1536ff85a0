package collection

import (
	"cmp"
	"math/rand/v2"
	"slices"
)

// MoveToFront returns a copy of items with the first element equal to item
// moved to index 0 and the elements before it shifted right. When item is
// absent the copy keeps the original order and found is false.
func MoveToFront[T comparable](items []T, item T) (result []T, found bool) {
	return MoveToFrontFunc(items, func(v T) bool { return v == item })
}

// MoveToFrontFunc is MoveToFront for the first element satisfying match.
func MoveToFrontFunc[T any](items []T, match func(T) bool) (result []T, found bool) {
	result = slices.Clone(items)
	idx := slices.IndexFunc(result, match)
	if idx < 0 {
		return result, false
	}
	target := result[idx]
	copy(result[1:idx+1], result[:idx])
	result[0] = target
	return result, true
}

// SortBy returns a copy of items stably sorted by key in ascending order.
func SortBy[T any, K cmp.Ordered](items []T, key func(T) K) []T {
	return SortByFunc(items, func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	})
}

// SortByFunc returns a copy of items stably sorted with compare.
func SortByFunc[T any](items []T, compare func(a, b T) int) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, compare)
	return out
}

// SortByField returns a copy of records stably sorted by field.
//
// Values of different kinds order as numbers, strings, bools, other values,
// then nil and absent fields. Numbers compare numerically across Go numeric
// types and json.Number; strings compare by UTF-16 code unit.
func SortByField(records []Record, field string) []Record {
	return SortByFunc(records, func(a, b Record) int {
		av, aok := lookup(a, field)
		bv, bok := lookup(b, field)
		return compareDynamic(av, aok, bv, bok)
	})
}

// Shuffle returns a uniformly shuffled copy of items.
func Shuffle[T any](items []T) []T {
	return shuffle(items, rand.IntN)
}

// ShuffleWith is Shuffle drawing randomness from r.
func ShuffleWith[T any](r *rand.Rand, items []T) []T {
	return shuffle(items, r.IntN)
}

func shuffle[T any](items []T, intN func(int) int) []T {
	out := slices.Clone(items)
	for i := len(out) - 1; i > 0; i-- {
		j := intN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
