package core

import (
	"bytes"
	"encoding/json"
)

// CanonicalJSON returns the canonical text encoding of v.
//
// Object keys of maps are sorted lexicographically, struct fields keep their
// declaration order and slices keep element order, so two structurally equal
// values always produce identical bytes. Values JSON cannot represent
// (channels, funcs, NaN, cyclic references) fail with a *SerializationError.
func CanonicalJSON(v any) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, &SerializationError{Index: -1, Err: err}
	}
	return bytes.TrimSuffix(b.Bytes(), []byte{'\n'}), nil
}

// CanonicalKey is CanonicalJSON as a string, suitable as a map key.
func CanonicalKey(v any) (string, error) {
	bs, err := CanonicalJSON(v)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}
