package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrGameNotFound indicates the catalog has no game with the requested id
	ErrGameNotFound = errors.New("game not found")

	// ErrCatalogUnavailable indicates the catalog API could not be reached
	ErrCatalogUnavailable = errors.New("game catalog is unreachable")

	// ErrMissingAPIKey indicates no catalog API key is configured
	ErrMissingAPIKey = errors.New("catalog API key is not configured")

	// ErrUnknownFilter indicates a filter field name outside the FilterSet
	ErrUnknownFilter = errors.New("unknown filter field")

	// ErrInvalidFilterValue indicates a value the filter field cannot hold
	ErrInvalidFilterValue = errors.New("invalid filter value")
)
