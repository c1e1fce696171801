package fatigue

import "errors"

var (
	// ErrConfiguration marks a material definition that cannot be used.
	ErrConfiguration = errors.New("configuration error")
	// ErrInvalidArgument marks a bad argument to a single calculation.
	ErrInvalidArgument = errors.New("invalid argument")
)
