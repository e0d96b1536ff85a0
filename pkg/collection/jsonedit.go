package collection

import (
	"bytes"
	"errors"

	"github.com/compozy/toolkit/engine/core"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

var (
	ErrInvalidJSON = errors.New("collection: invalid JSON document")
	ErrNotObject   = errors.New("collection: JSON document is not an object")
)

// EditJSONValue sets a top-level key of a JSON object and returns the compact
// result. Existing keys keep their position; a new key is appended. On
// failure the original document is returned with the error.
func EditJSONValue(doc, key string, value any) (string, error) {
	if !gjson.Valid(doc) {
		return doc, ErrInvalidJSON
	}
	parsed := gjson.Parse(doc)
	if !parsed.IsObject() {
		return doc, ErrNotObject
	}
	encoded, err := core.CanonicalJSON(value)
	if err != nil {
		return doc, core.AsSerializationError(err, -1, key)
	}
	keyRaw, err := core.CanonicalJSON(key)
	if err != nil {
		return doc, err
	}
	var b bytes.Buffer
	b.WriteByte('{')
	first, replaced := true, false
	parsed.ForEach(func(k, v gjson.Result) bool {
		isTarget := k.String() == key
		if isTarget && replaced {
			return true
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		if isTarget {
			b.Write(keyRaw)
			b.WriteByte(':')
			b.Write(encoded)
			replaced = true
			return true
		}
		b.Write(pretty.Ugly([]byte(k.Raw)))
		b.WriteByte(':')
		b.Write(pretty.Ugly([]byte(v.Raw)))
		return true
	})
	if !replaced {
		if !first {
			b.WriteByte(',')
		}
		b.Write(keyRaw)
		b.WriteByte(':')
		b.Write(encoded)
	}
	b.WriteByte('}')
	return b.String(), nil
}
