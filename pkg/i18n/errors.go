package i18n

import "errors"

var (
	// ErrInvalidCatalog is returned when a catalog document is malformed.
	ErrInvalidCatalog = errors.New("invalid translation catalog")
)
