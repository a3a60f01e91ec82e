package domain

import "errors"

var (
	ErrNotFound            = errors.New("entity not found")
	ErrUnrecognizedCommand = errors.New("unrecognized command")
	ErrInvalidPayload      = errors.New("invalid command payload")
	ErrMissingFields       = errors.New("missing required fields")
)
