package collection

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"
)

// Groups maps string keys to elements, iterating keys in the order they were
// first seen.
type Groups[T any] struct {
	keys  []string
	items map[string][]T
}

func newGroups[T any]() *Groups[T] {
	return &Groups[T]{items: make(map[string][]T)}
}

func (g *Groups[T]) add(key string, item T) {
	if _, ok := g.items[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.items[key] = append(g.items[key], item)
}

// Keys returns the group keys in first-occurrence order.
func (g *Groups[T]) Keys() []string {
	return slices.Clone(g.keys)
}

// Get returns the elements of a group.
func (g *Groups[T]) Get(key string) ([]T, bool) {
	items, ok := g.items[key]
	return items, ok
}

// Len returns the number of groups.
func (g *Groups[T]) Len() int {
	return len(g.keys)
}

// All iterates groups in first-occurrence order.
func (g *Groups[T]) All() iter.Seq2[string, []T] {
	return func(yield func(string, []T) bool) {
		for _, k := range g.keys {
			if !yield(k, g.items[k]) {
				return
			}
		}
	}
}

// Map returns the groups as a plain map. The slices are shared with g.
func (g *Groups[T]) Map() map[string][]T {
	out := make(map[string][]T, len(g.items))
	for k, v := range g.items {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the groups as an object whose keys keep
// first-occurrence order.
func (g *Groups[T]) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range g.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(g.items[k])
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// GroupBy partitions items by the string form of key. Every element lands in
// exactly one group and keeps its relative order within the group.
func GroupBy[T any, K any](items []T, key func(T) K) *Groups[T] {
	g := newGroups[T]()
	for _, item := range items {
		g.add(stringForm(any(key(item))), item)
	}
	return g
}

// GroupByField partitions records by the string form of field. Records
// holding nil are grouped under "null", records missing the field under
// "undefined".
func GroupByField(records []Record, field string) *Groups[Record] {
	return GroupBy(records, func(r Record) string {
		v, ok := lookup(r, field)
		if !ok {
			return undefinedGroupKey
		}
		return stringForm(v)
	})
}
