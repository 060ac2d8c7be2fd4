package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that no saved session exists
	ErrAuthNotFound = errors.New("auth data not found")
)
