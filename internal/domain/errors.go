package domain

import "errors"

// Domain errors
var (
	ErrNoText             = errors.New("no text to summarize")
	ErrUnsupportedBackend = errors.New("unsupported PDF backend")
)
