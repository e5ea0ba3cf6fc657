package ports

import (
	"context"

	"github.com/drivehq/drive-api/internal/core/domain"
)

type CreateFileInput struct {
	Name           string
	Size           int64
	MimeType       string
	IdempotencyKey string
}

// CreateFileResult returns the persisted metadata together with a presigned
// PUT URL the client uses to upload the bytes directly to object storage.
type CreateFileResult struct {
	File      *domain.File
	UploadURL string
}

type PresignUploadResult struct {
	UploadURL string
	Key       string
	Bucket    string
}

type FileService interface {
	List(ctx context.Context, userID string) ([]*domain.File, error)
	Create(ctx context.Context, userID string, in CreateFileInput) (*CreateFileResult, error)
	Get(ctx context.Context, userID, fileID string) (*domain.File, error)
	Delete(ctx context.Context, userID, fileID string) error
	DownloadURL(ctx context.Context, userID, fileID string) (string, error)

	// PresignUpload and PresignDownload expose raw presigned URLs without
	// touching metadata, mirroring the direct object-storage endpoints.
	PresignUpload(ctx context.Context, userID, fileName, fileType string) (*PresignUploadResult, error)
	PresignDownload(ctx context.Context, key string) (string, error)
}
