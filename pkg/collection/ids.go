package collection

import "strconv"

// Identified pairs a value with an identifier without modifying the value.
type Identified[T any] struct {
	ID    string `json:"id"`
	Value T      `json:"value"`
}

// AssignIDs wraps every element with an ID. When existing reports an ID for
// an element it is kept; otherwise the element gets "id_<index>".
// existing may be nil.
func AssignIDs[T any](items []T, existing func(T) (string, bool)) []Identified[T] {
	out := make([]Identified[T], len(items))
	for i, item := range items {
		id := ""
		ok := false
		if existing != nil {
			id, ok = existing(item)
		}
		if !ok {
			id = "id_" + strconv.Itoa(i)
		}
		out[i] = Identified[T]{ID: id, Value: item}
	}
	return out
}

// RecordID reads an existing record ID from field.
func RecordID(field string) func(Record) (string, bool) {
	return func(r Record) (string, bool) {
		v, ok := lookup(r, field)
		if !ok {
			return "", false
		}
		return stringForm(v), true
	}
}
