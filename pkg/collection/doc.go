// Package collection provides pure helpers that normalize in-memory
// collections: deduplication by key or by value, insertion-ordered grouping,
// stable sorting, collision-free name generation and field picking.
//
// Every helper returns a new slice or map and leaves its input untouched.
// Generic variants take a typed selector (func(T) K); the *Field variants
// operate on dynamic Records and distinguish an absent field from one
// holding nil.
package collection
