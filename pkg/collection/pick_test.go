package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPick(t *testing.T) {
	record := Record{"a": 1, "b": "two", "c": nil}

	t.Run("Should keep only requested keys that exist", func(t *testing.T) {
		assert.Equal(t, Record{"a": 1, "c": nil}, Pick(record, "a", "c", "missing"))
	})

	t.Run("Should return an empty record when nothing matches", func(t *testing.T) {
		out := Pick(record, "x")
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("Should not alias the source record", func(t *testing.T) {
		out := Pick(record, "a")
		out["a"] = 99
		assert.Equal(t, 1, record["a"])
	})
}

func TestPickFields(t *testing.T) {
	t.Run("Should follow the requested key order", func(t *testing.T) {
		record := Record{"a": 1, "b": 2, "c": 3}

		out := PickFields(record, "c", "a", "c", "z")

		assert.Equal(t, []Field{{Key: "c", Value: 3}, {Key: "a", Value: 1}}, out)
	})
}

func TestAssignIDs(t *testing.T) {
	t.Run("Should keep existing IDs and number the rest by index", func(t *testing.T) {
		in := []Record{{"id": "x"}, {"name": "b"}, {"id": 7}}

		out := AssignIDs(in, RecordID("id"))

		assert.Equal(t, "x", out[0].ID)
		assert.Equal(t, "id_1", out[1].ID)
		assert.Equal(t, "7", out[2].ID)
		assert.Equal(t, Record{"name": "b"}, out[1].Value)
		assert.NotContains(t, in[1], "id")
	})

	t.Run("Should number every element without a selector", func(t *testing.T) {
		out := AssignIDs([]string{"a", "b"}, nil)
		assert.Equal(t, []Identified[string]{{ID: "id_0", Value: "a"}, {ID: "id_1", Value: "b"}}, out)
	})
}

func TestIsEmpty(t *testing.T) {
	type point struct{ X, Y int }
	var nilMap map[string]int
	var nilPtr *point
	s := ""

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"string", "x", false},
		{"empty slice", []int{}, true},
		{"slice", []int{1}, false},
		{"nil map", nilMap, true},
		{"map", map[string]int{"a": 1}, false},
		{"nil pointer", nilPtr, true},
		{"pointer to empty string", &s, true},
		{"zero struct", point{}, true},
		{"struct", point{X: 1}, false},
		{"pointer to struct", &point{Y: 2}, false},
		{"number", 42, true},
		{"bool", true, true},
	}
	for _, tt := range tests {
		t.Run("Should report "+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmpty(tt.value))
		})
	}
}
