package tier

import "errors"

var (
	// ErrFormat is returned when a service objective label cannot be decoded.
	ErrFormat = errors.New("invalid tier label")

	// ErrInvalidLadder is returned when a ladder definition is empty or not strictly increasing.
	ErrInvalidLadder = errors.New("invalid tier ladder")
)
