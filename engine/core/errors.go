package core

import (
	"errors"
	"fmt"
)

// SerializationError reports a value that cannot be canonically encoded or
// decoded. Index is the position of the offending element in a sequence, or
// -1 when the value was not part of one. Key names the storage key involved,
// if any.
type SerializationError struct {
	Index int
	Key   string
	Err   error
}

func (e *SerializationError) Error() string {
	switch {
	case e.Index >= 0:
		return fmt.Sprintf("serialization failed at index %d: %v", e.Index, e.Err)
	case e.Key != "":
		return fmt.Sprintf("serialization failed for key %q: %v", e.Key, e.Err)
	default:
		return fmt.Sprintf("serialization failed: %v", e.Err)
	}
}

func (e *SerializationError) Unwrap() error { return e.Err }

// AsSerializationError returns err as a *SerializationError, re-tagged with the
// given index and key. Errors of any other kind are wrapped.
func AsSerializationError(err error, index int, key string) *SerializationError {
	var se *SerializationError
	if errors.As(err, &se) {
		return &SerializationError{Index: index, Key: key, Err: se.Err}
	}
	return &SerializationError{Index: index, Key: key, Err: err}
}
