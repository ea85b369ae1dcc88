package vault

import "errors"

// ErrFormat is returned when a stored field decrypts successfully but does
// not parse to its expected type, or when only a subset of the record's keys
// is present in the store. Callers should use [errors.Is] to match it.
var ErrFormat = errors.New("stored token record has invalid format")
