package ports

import (
	"context"

	"github.com/drivehq/drive-api/internal/core/domain"
)

// FileRepository defines the interface for file-metadata persistence.
type FileRepository interface {
	Create(ctx context.Context, file *domain.File) (*domain.File, error)
	FindByID(ctx context.Context, id string) (*domain.File, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.File, error)
	Delete(ctx context.Context, id string) error
}
