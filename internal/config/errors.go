package config

import "errors"

var (
	// ErrInvalidStorageConfigs is returned when the local database DSN is
	// missing from every configuration source.
	ErrInvalidStorageConfigs = errors.New("invalid storage configs: database DSN is required")

	// ErrInvalidAdapterConfigs is returned when the sync server base URL is
	// missing or the request timeout is not positive.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configs: base URL and request timeout are required")

	// ErrInvalidAuthConfigs is returned when no token file path is configured.
	ErrInvalidAuthConfigs = errors.New("invalid auth configs: token path is required")

	// ErrInvalidWorkerConfigs is returned when the background sync interval
	// is not positive.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configs: sync interval is required")
)
