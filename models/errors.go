package models

import "errors"

// Sentinel errors shared by the store and service layers. Callers classify
// with errors.Is; the HTTP layer maps them onto status codes.
var (
	// ErrNotFound covers entities that are absent for the requesting owner,
	// including entities that exist but belong to someone else.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks client errors detected before any mutation.
	ErrValidation = errors.New("invalid request")

	// ErrDependency marks remote object-store failures on strict paths
	// (upload, single-file delete) where the database is left unmodified.
	ErrDependency = errors.New("object store failure")
)
