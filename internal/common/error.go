// Package common defines shared sentinel errors used across the FaceVault
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("unique constraint violation")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Transport-level errors (rejected before storage access).
	ErrorValidation = errors.New("validation error")
)
