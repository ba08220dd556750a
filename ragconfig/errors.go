package ragconfig

import "errors"

var (
	// ErrConfigRepositoryRequired indicates no config repository was provided.
	ErrConfigRepositoryRequired = errors.New("config repository is required")

	// ErrUnknownKey indicates an update referenced a key outside the catalog.
	ErrUnknownKey = errors.New("unknown configuration key")

	// ErrInvalidValue indicates a value could not be parsed for its key type.
	ErrInvalidValue = errors.New("invalid configuration value")

	// ErrOutOfBounds indicates a numeric value outside the key's bounds.
	ErrOutOfBounds = errors.New("value out of bounds")
)
