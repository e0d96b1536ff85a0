package collection

import (
	"encoding/json"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveToFront(t *testing.T) {
	t.Run("Should move a found element to index zero", func(t *testing.T) {
		out, found := MoveToFront([]int{1, 2, 3}, 3)
		assert.True(t, found)
		assert.Equal(t, []int{3, 1, 2}, out)
	})

	t.Run("Should leave the order unchanged when absent", func(t *testing.T) {
		out, found := MoveToFront([]int{1, 2, 3}, 9)
		assert.False(t, found)
		assert.Equal(t, []int{1, 2, 3}, out)
	})

	t.Run("Should move only the first occurrence", func(t *testing.T) {
		out, _ := MoveToFront([]string{"a", "b", "c", "b"}, "b")
		assert.Equal(t, []string{"b", "a", "c", "b"}, out)
	})

	t.Run("Should not mutate the input", func(t *testing.T) {
		in := []int{1, 2, 3}
		_, _ = MoveToFront(in, 2)
		assert.Equal(t, []int{1, 2, 3}, in)
	})

	t.Run("Should match with a predicate", func(t *testing.T) {
		in := []Record{{"id": "a"}, {"id": "b"}}
		out, found := MoveToFrontFunc(in, func(r Record) bool { return r["id"] == "b" })
		assert.True(t, found)
		assert.Equal(t, "b", out[0]["id"])
	})
}

func TestSortBy(t *testing.T) {
	t.Run("Should sort by a numeric field", func(t *testing.T) {
		in := []Record{{"v": 3}, {"v": 1}, {"v": 2}}

		out := SortByField(in, "v")

		assert.Equal(t, []Record{{"v": 1}, {"v": 2}, {"v": 3}}, out)
		assert.Equal(t, []Record{{"v": 3}, {"v": 1}, {"v": 2}}, in)
	})

	t.Run("Should keep input order for equal keys", func(t *testing.T) {
		type item struct {
			Key   int
			Order int
		}
		r := rand.New(rand.NewPCG(7, 8))
		in := make([]item, 200)
		for i := range in {
			in[i] = item{Key: r.IntN(5), Order: i}
		}

		out := SortBy(in, func(it item) int { return it.Key })

		for i := 1; i < len(out); i++ {
			if out[i-1].Key == out[i].Key {
				assert.Less(t, out[i-1].Order, out[i].Order)
			} else {
				assert.Less(t, out[i-1].Key, out[i].Key)
			}
		}
	})

	t.Run("Should compare strings by bytes", func(t *testing.T) {
		out := SortBy([]string{"b", "B", "a"}, func(s string) string { return s })
		assert.Equal(t, []string{"B", "a", "b"}, out)
	})

	t.Run("Should order record strings by UTF-16 code unit", func(t *testing.T) {
		in := []Record{{"s": "\uFFFF"}, {"s": "\U00010000"}, {"s": "\uD7FF"}, {"s": "a"}}

		out := SortByField(in, "s")

		assert.Equal(t, []Record{{"s": "a"}, {"s": "\uD7FF"}, {"s": "\U00010000"}, {"s": "\uFFFF"}}, out)
	})

	t.Run("Should order mixed numeric types numerically", func(t *testing.T) {
		in := []Record{{"v": 2.5}, {"v": int64(-1)}, {"v": json.Number("10")}, {"v": uint8(2)}}

		out := SortByField(in, "v")

		assert.Equal(t, []any{int64(-1), uint8(2), 2.5, json.Number("10")}, fieldValues(out, "v"))
	})

	t.Run("Should place nil and absent values last", func(t *testing.T) {
		in := []Record{{"n": 1}, {"v": nil, "n": 2}, {"v": "x", "n": 3}, {"v": 1, "n": 4}, {"v": true, "n": 5}}

		out := SortByField(in, "v")

		assert.Equal(t, []any{4, 3, 5, 1, 2}, fieldValues(out, "n"))
	})
}

func TestShuffle(t *testing.T) {
	t.Run("Should keep every element", func(t *testing.T) {
		in := []int{1, 2, 3, 4, 5, 6, 7, 8}

		out := ShuffleWith(rand.New(rand.NewPCG(1, 1)), in)

		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, in)
		sorted := slices.Clone(out)
		slices.Sort(sorted)
		assert.Equal(t, in, sorted)
	})

	t.Run("Should be deterministic for a seeded source", func(t *testing.T) {
		in := []string{"a", "b", "c", "d", "e"}
		a := ShuffleWith(rand.New(rand.NewPCG(5, 5)), in)
		b := ShuffleWith(rand.New(rand.NewPCG(5, 5)), in)
		assert.Equal(t, a, b)
	})

	t.Run("Should handle empty input", func(t *testing.T) {
		require.Empty(t, Shuffle([]int{}))
	})
}

func fieldValues(records []Record, field string) []any {
	out := make([]any, len(records))
	for i, r := range records {
		out[i] = r[field]
	}
	return out
}
