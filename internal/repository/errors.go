// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific error strings.
package repository

import "errors"

// ErrConflict is returned when a delete or update cannot be performed
// because of conflicting state, e.g. deleting a hall that a stored
// seating plan still references. Handlers should translate this into an
// HTTP 409 response.
var ErrConflict = errors.New("conflict")
