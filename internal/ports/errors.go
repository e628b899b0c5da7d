package ports

import "errors"

// Standard application-level errors.
// Adapters should wrap underlying infrastructure errors with these standard errors.
var (
	// General Errors
	ErrUnknown            = errors.New("unknown error occurred")
	ErrInvalidRequest     = errors.New("invalid request parameters or format")
	ErrNotFound           = errors.New("resource not found")
	ErrConfigurationError = errors.New("invalid or missing configuration")

	// Curve Engine Errors
	ErrInvalidRange = errors.New("invalid utilization range")
	ErrInvalidCurve = errors.New("invalid curve definition")

	// Catalog Errors
	ErrCatalogEmpty   = errors.New("curve catalog is empty")
	ErrCatalogDecode  = errors.New("curve catalog could not be decoded")
	ErrDuplicateEntry = errors.New("catalog entry already exists")
	ErrDBConnection   = errors.New("database connection error")
	ErrQueryFailed    = errors.New("database query failed")
	ErrExportFailed   = errors.New("failed to export rendered curves")
)
