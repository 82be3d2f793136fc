package domain

import "errors"

// Authentication errors.
var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrUnauthorized       = errors.New("credentials rejected")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Token errors.
var (
	ErrMalformedTokens   = errors.New("malformed token response")
	ErrCSRFSecretMissing = errors.New("CSRF secret not configured")
	ErrCSRFMismatch      = errors.New("CSRF token mismatch")
)

// External service errors.
var (
	ErrBackendUnavailable   = errors.New("backend API unavailable")
	ErrOrganizationNotFound = errors.New("organization not found")
)

// Input errors.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnknownEntity = errors.New("unknown entity")
)

// Rate limiting errors.
var (
	ErrRateLimited = errors.New("rate limit exceeded")
)
