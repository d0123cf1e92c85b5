// Package common defines shared constants and sentinel errors used across
// the layers of the notes backend. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")

	// OAuth flow errors. ErrExternalAuth means the provider rejected the
	// token or the introspection call failed; ErrAuthenticationFailed masks
	// any other failure inside the reconciliation path.
	ErrExternalAuth         = errors.New("external auth provider error")
	ErrAuthenticationFailed = errors.New("authentication failed")
)
