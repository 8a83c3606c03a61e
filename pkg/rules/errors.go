package rules

import "errors"

var (
	// ErrUnknownRule is returned when a rule name is not registered.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrInvalidRule is returned when registering an empty name or a nil factory.
	ErrInvalidRule = errors.New("rule must have a non-empty name and a non-nil factory")

	// ErrInvalidParams is returned when a factory receives unusable parameters.
	ErrInvalidParams = errors.New("invalid rule parameters")

	// ErrInvalidConfig is returned when a YAML config cannot be turned into rules.
	ErrInvalidConfig = errors.New("invalid rules config")
)
