package repository

import "errors"

// ErrNotFound is returned when the requested row does not exist. Both
// backends report it so callers can map misses uniformly.
var ErrNotFound = errors.New("not found")
