package kvstore

import "errors"

// Backend-neutral errors every Backend must return.
var (
	ErrNotFound = errors.New("kvstore: not found")
	ErrClosed   = errors.New("kvstore: closed")
)
