package collection

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByField(t *testing.T) {
	t.Run("Should group records in first-occurrence order", func(t *testing.T) {
		in := []Record{{"t": "a", "n": 1}, {"t": "b", "n": 2}, {"t": "a", "n": 3}}

		groups := GroupByField(in, "t")

		assert.Equal(t, []string{"a", "b"}, groups.Keys())
		a, ok := groups.Get("a")
		require.True(t, ok)
		assert.Equal(t, []Record{{"t": "a", "n": 1}, {"t": "a", "n": 3}}, a)
		b, _ := groups.Get("b")
		assert.Equal(t, []Record{{"t": "b", "n": 2}}, b)
	})

	t.Run("Should group nil under null and missing fields under undefined", func(t *testing.T) {
		in := []Record{{"t": nil}, {}, {"t": 1}, {"u": 2}}

		groups := GroupByField(in, "t")

		assert.Equal(t, []string{"null", "undefined", "1"}, groups.Keys())
		null, _ := groups.Get("null")
		assert.Equal(t, []Record{{"t": nil}}, null)
		undefined, _ := groups.Get("undefined")
		assert.Equal(t, []Record{{}, {"u": 2}}, undefined)
	})

	t.Run("Should place every element in exactly one group", func(t *testing.T) {
		in := []Record{{"t": 1}, {"t": "1"}, {"t": true}, {"t": 2.5}, {"t": 1}}

		groups := GroupByField(in, "t")

		total := 0
		for _, items := range groups.All() {
			total += len(items)
		}
		assert.Equal(t, len(in), total)
		assert.Equal(t, []string{"1", "true", "2.5"}, groups.Keys())
	})

	t.Run("Should return no groups for empty input", func(t *testing.T) {
		groups := GroupByField(nil, "t")
		assert.Equal(t, 0, groups.Len())
		assert.Empty(t, groups.Keys())
	})

	t.Run("Should encode groups as an ordered JSON object", func(t *testing.T) {
		in := []Record{{"t": "z"}, {"t": "a"}}

		out, err := json.Marshal(GroupByField(in, "t"))

		require.NoError(t, err)
		assert.JSONEq(t, `{"z":[{"t":"z"}],"a":[{"t":"a"}]}`, string(out))
		assert.Equal(t, `{"z":[{"t":"z"}],"a":[{"t":"a"}]}`, string(out))
	})
}

func TestGroupBy(t *testing.T) {
	t.Run("Should group by a typed selector", func(t *testing.T) {
		words := []string{"apple", "bob", "avocado", "cat", "banana"}

		groups := GroupBy(words, func(s string) byte { return s[0] })

		assert.Equal(t, []string{"97", "98", "99"}, groups.Keys())
		assert.Equal(t, map[string][]string{
			"97": {"apple", "avocado"},
			"98": {"bob", "banana"},
			"99": {"cat"},
		}, groups.Map())
	})

	t.Run("Should stop iteration early", func(t *testing.T) {
		groups := GroupBy([]int{1, 2, 3}, func(i int) int { return i })
		var seen []string
		for k := range groups.All() {
			seen = append(seen, k)
			if len(seen) == 2 {
				break
			}
		}
		assert.Equal(t, []string{"1", "2"}, seen)
	})
}
