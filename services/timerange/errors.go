package timerange

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found or expired")
	ErrBlockNotFound   = errors.New("blocked interval not found")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrTooManySessions = errors.New("session limit reached")
)
