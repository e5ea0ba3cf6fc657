package ports

import (
	"context"

	"github.com/drivehq/drive-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence. Email is the
// natural key; the store enforces its uniqueness.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateProfile(ctx context.Context, id, name, image string) (*domain.User, error)
}
