package service

import "errors"

// Sentinel errors returned by the sync service. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrNotAuthenticated is returned when a sync cycle is requested but no
	// usable API token is available.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSyncInProgress is returned when a sync cycle is requested while
	// another one is still running. Cycles never overlap.
	ErrSyncInProgress = errors.New("sync already in progress")
)
