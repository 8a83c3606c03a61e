package form

import "errors"

var (
	// ErrInvalidConfig is returned when a raw config tree contains a value that is
	// neither a Rule nor a nested map.
	ErrInvalidConfig = errors.New("invalid form config")
)
