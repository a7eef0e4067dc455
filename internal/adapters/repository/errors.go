package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound    = errors.New("revision not found")
	ErrInvalidID   = errors.New("invalid revision id")
	ErrStoreClosed = errors.New("store closed")
)
