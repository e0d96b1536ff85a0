package collection

import (
	"cmp"
	"encoding/json"
	"fmt"
	"reflect"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/compozy/toolkit/engine/core"
)

// Record is a dynamically shaped element, such as a decoded JSON object.
type Record = map[string]any

// Field is a single record entry. Slices of Field keep an explicit order.
type Field struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Group keys of nil and missing field values.
const (
	nullGroupKey      = "null"
	undefinedGroupKey = "undefined"
)

// absentField is the equality bucket of records missing the field.
type absentField struct{}

// refKey identifies non-comparable reference values by address.
type refKey struct {
	typ reflect.Type
	ptr uintptr
	n   int
}

// numberKey is the equality bucket of a json.Number, by numeric value.
type numberKey float64

// valueKey identifies non-comparable plain values by their canonical form.
type valueKey struct {
	typ  reflect.Type
	repr string
}

func lookup(r Record, field string) (any, bool) {
	v, ok := r[field]
	return v, ok
}

// equalityKey maps v to a comparable key. json.Number values compare by
// numeric value; other comparable values are used as-is; maps, slices and
// funcs compare by identity; other values compare by their canonical
// encoding.
func equalityKey(v any) any {
	if v == nil {
		return nil
	}
	if n, ok := v.(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			return numberKey(f)
		}
		return v
	}
	rv := reflect.ValueOf(v)
	if rv.Comparable() {
		return v
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Func:
		return refKey{typ: rv.Type(), ptr: rv.Pointer()}
	case reflect.Slice:
		return refKey{typ: rv.Type(), ptr: rv.Pointer(), n: rv.Len()}
	}
	if repr, err := core.CanonicalKey(v); err == nil {
		return valueKey{typ: rv.Type(), repr: repr}
	}
	return valueKey{typ: rv.Type(), repr: fmt.Sprintf("%#v", v)}
}

// stringForm renders a group key.
func stringForm(v any) string {
	switch t := v.(type) {
	case nil:
		return nullGroupKey
	case string:
		return t
	default:
		return fmt.Sprint(v)
	}
}

// Ranks of dynamic value classes for SortByField.
const (
	rankNumber = iota
	rankString
	rankBool
	rankOther
	rankNull
)

func rankOf(v any, present bool) int {
	if !present || v == nil {
		return rankNull
	}
	if _, ok := v.(json.Number); ok {
		return rankNumber
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return rankNumber
	case reflect.String:
		return rankString
	case reflect.Bool:
		return rankBool
	default:
		return rankOther
	}
}

// compareDynamic orders two field values: numbers, then strings, then bools,
// then everything else by canonical form, with nil and absent values last.
func compareDynamic(a any, aok bool, b any, bok bool) int {
	ra, rb := rankOf(a, aok), rankOf(b, bok)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case rankNumber:
		return compareNumbers(a, b)
	case rankString:
		return compareUTF16(reflect.ValueOf(a).String(), reflect.ValueOf(b).String())
	case rankBool:
		ba, bb := reflect.ValueOf(a).Bool(), reflect.ValueOf(b).Bool()
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		default:
			return 1
		}
	case rankOther:
		return cmp.Compare(reprOf(a), reprOf(b))
	default:
		return 0
	}
}

// compareUTF16 orders strings by UTF-16 code unit, so characters above
// U+FFFF sort between U+D7FF and U+E000.
func compareUTF16(a, b string) int {
	for a != "" && b != "" {
		ra, na := utf8.DecodeRuneInString(a)
		rb, nb := utf8.DecodeRuneInString(b)
		if ra != rb {
			if c := cmp.Compare(firstUnit(ra), firstUnit(rb)); c != 0 {
				return c
			}
			return cmp.Compare(ra, rb)
		}
		a, b = a[na:], b[nb:]
	}
	return cmp.Compare(len(a), len(b))
}

func firstUnit(r rune) rune {
	if hi, _ := utf16.EncodeRune(r); hi != utf8.RuneError {
		return hi
	}
	return r
}

func compareNumbers(a, b any) int {
	av, bv := numericValue(a), numericValue(b)
	switch {
	case av.Kind() == reflect.Int64 && bv.Kind() == reflect.Int64:
		return cmp.Compare(av.Int(), bv.Int())
	case av.Kind() == reflect.Uint64 && bv.Kind() == reflect.Uint64:
		return cmp.Compare(av.Uint(), bv.Uint())
	default:
		return cmp.Compare(asFloat(av), asFloat(bv))
	}
}

// numericValue normalizes a number to an int64, uint64 or float64 value.
func numericValue(v any) reflect.Value {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return reflect.ValueOf(i)
		}
		f, _ := n.Float64()
		return reflect.ValueOf(f)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.ValueOf(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return reflect.ValueOf(rv.Uint())
	default:
		return reflect.ValueOf(rv.Float())
	}
}

func asFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int64:
		return float64(v.Int())
	case reflect.Uint64:
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

func reprOf(v any) string {
	if repr, err := core.CanonicalKey(v); err == nil {
		return repr
	}
	return fmt.Sprint(v)
}
