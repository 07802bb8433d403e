package services

import "errors"

// Sentinel errors surfaced to controllers; mapped to HTTP statuses by the
// global error handler.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
