package ports

import (
	"context"

	"github.com/drivehq/drive-api/internal/core/domain"
)

// ExchangeInput is the identity claim a client presents after completing the
// third-party sign-in flow. ProviderToken is optional and, when present,
// verified best-effort against the provider secret.
type ExchangeInput struct {
	UserID        string
	Email         string
	Name          string
	Image         string
	ProviderToken string
}

// AuthResult pairs a freshly issued bearer token with the resolved user.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	// Exchange reconciles an identity-provider claim with a local user
	// record (upsert by email) and issues a first-party bearer token.
	Exchange(ctx context.Context, in ExchangeInput) (*AuthResult, error)
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, id string) (*domain.User, error)
}
