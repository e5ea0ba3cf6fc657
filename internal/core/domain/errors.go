package domain

import "errors"

var (
	// ErrMissingClaimFields signals an identity claim without the required
	// userId/email fields (caller fault).
	ErrMissingClaimFields = errors.New("userId and email are required")

	// ErrInvalidCredentials covers bad email/password pairs.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers malformed, tampered, and expired bearer tokens.
	// Verification internals are never exposed to the caller.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrProviderTokenMismatch signals a provider token whose subject does
	// not match the claimed external user ID.
	ErrProviderTokenMismatch = errors.New("provider token subject mismatch")

	// ErrNoSigningSecret is a server configuration fault: no signing secret
	// is configured at all. Never substituted with a default value.
	ErrNoSigningSecret = errors.New("no signing secret configured")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")

	ErrFileNotFound = errors.New("file not found")
	ErrForbidden    = errors.New("access forbidden")

	// ErrDuplicateRequest signals an idempotency-key replay.
	ErrDuplicateRequest = errors.New("duplicate request")
)
