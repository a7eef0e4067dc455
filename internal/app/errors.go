package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted      = errors.New("service not started")
	ErrNoSnapshot      = errors.New("no snapshot loaded")
	ErrMissionNotFound = errors.New("mission not found")
	ErrPilotNotFound   = errors.New("pilot not found")
	ErrUnknownKind     = errors.New("unknown conflict kind")
)
