// Package common defines shared constants and sentinel errors used across
// notedrive components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository and remote-store lookup errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors.
	ErrorNoToken      = errors.New("no access token")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenRejected  = errors.New("token rejected by remote")
	ErrorAuthCanceled = errors.New("authorization canceled")

	// Import/export errors.
	ErrorInvalidFormat = errors.New("invalid file format")
)
