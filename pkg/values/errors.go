package values

import "errors"

// ErrDuplicateKey is returned when a key is registered twice in the same registry.
var ErrDuplicateKey = errors.New("duplicate value key")

// ErrUnknownHandle is returned when a handle was not issued by the registry or its entry was removed.
var ErrUnknownHandle = errors.New("unknown value handle")

// ErrReadOnly is returned when writing through a read-only handle.
var ErrReadOnly = errors.New("read-only value")
