package repositories

import "errors"

// ErrNotFound indicates the requested submission does not exist. Store
// faults are reported as distinct wrapped errors.
var ErrNotFound = errors.New("submission not found")
