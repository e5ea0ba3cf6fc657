package domain

import "time"

// User models an account known to the backend. Accounts are created either
// through classic registration or on first sight of an identity-provider
// claim during token exchange; in the latter case the external identity's
// user ID becomes the persistent ID and no password hash exists.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Image        string    `json:"image,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the request-scoped authenticated identity extracted from a
// verified bearer token. It exists only for the duration of one request.
type Identity struct {
	ID    string
	Email string
	Name  string
	Image string
}
