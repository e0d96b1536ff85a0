package collection

import "reflect"

// IsEmpty reports whether v holds no contents.
//
// nil, nil pointers and interfaces, and zero-length strings, slices, arrays,
// maps and channels are empty. Pointers are followed. A struct is empty when
// it is its zero value. Scalars (numbers, bools, funcs) are always empty
// since they carry no contents.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len() == 0
	case reflect.Struct:
		return rv.IsZero()
	default:
		return true
	}
}
