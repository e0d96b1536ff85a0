package collection

import (
	"reflect"

	"github.com/compozy/toolkit/engine/core"
)

// UniqueBy returns the elements of items whose key has not been seen before,
// in first-occurrence order.
func UniqueBy[T any, K comparable](items []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}

// UniqueByField deduplicates records by the value stored at field.
//
// Records missing the field share one bucket, separate from records holding
// an explicit nil. Maps, slices and funcs are compared by identity, not by
// contents.
func UniqueByField(records []Record, field string) []Record {
	return UniqueBy(records, func(r Record) any {
		v, ok := lookup(r, field)
		if !ok {
			return absentField{}
		}
		return equalityKey(v)
	})
}

// UniqueByValue removes structurally equal elements. Two elements are equal
// when their canonical JSON encodings match byte for byte.
//
// The result holds the first occurrences, in order. Map and slice elements
// are deep-copied so the result does not alias the input; other elements are
// returned as-is. An element that cannot be encoded yields a
// *core.SerializationError naming its index.
func UniqueByValue[T any](items []T) ([]T, error) {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for i, item := range items {
		key, err := core.CanonicalKey(item)
		if err != nil {
			return nil, core.AsSerializationError(err, i, "")
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept, err := detach(item)
		if err != nil {
			return nil, &core.SerializationError{Index: i, Err: err}
		}
		out = append(out, kept)
	}
	return out, nil
}

// detach deep-copies map and slice shapes. Structs are kept as-is since the
// copier drops unexported fields.
func detach[T any](item T) (T, error) {
	switch reflect.ValueOf(any(item)).Kind() {
	case reflect.Map, reflect.Slice:
		return core.DeepCopy(item)
	default:
		return item, nil
	}
}
