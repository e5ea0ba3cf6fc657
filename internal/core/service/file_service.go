package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/drivehq/drive-api/internal/core/domain"
	"github.com/drivehq/drive-api/internal/core/ports"
)

// FileService implements file-metadata CRUD and presigned-URL issuance.
// Metadata lives in the repository; bytes move between the client and
// object storage directly via presigned URLs.
type FileService struct {
	repo    ports.FileRepository
	objects ports.ObjectStore
	idem    ports.IdempotencyChecker
	log     zerolog.Logger
}

func NewFileService(repo ports.FileRepository, objects ports.ObjectStore, idem ports.IdempotencyChecker, log zerolog.Logger) *FileService {
	return &FileService{repo: repo, objects: objects, idem: idem, log: log}
}

func (s *FileService) List(ctx context.Context, userID string) ([]*domain.File, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Create registers file metadata and returns a presigned PUT URL for the
// upload. An Idempotency-Key replay is rejected before any write.
func (s *FileService) Create(ctx context.Context, userID string, in ports.CreateFileInput) (*ports.CreateFileResult, error) {
	if in.IdempotencyKey != "" && s.idem != nil {
		dup, err := s.idem.IsDuplicate(ctx, userID, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, domain.ErrDuplicateRequest
		}
	}

	key := storageKey(userID, in.Name)
	uploadURL, err := s.objects.PresignPut(ctx, key, in.MimeType)
	if err != nil {
		return nil, err
	}

	file, err := s.repo.Create(ctx, &domain.File{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       in.Name,
		Size:       in.Size,
		MimeType:   in.MimeType,
		StorageKey: key,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Mark(ctx, userID, in.IdempotencyKey); err != nil {
			s.log.Warn().Err(err).Msg("failed to mark idempotency key")
		}
	}

	return &ports.CreateFileResult{File: file, UploadURL: uploadURL}, nil
}

func (s *FileService) Get(ctx context.Context, userID, fileID string) (*domain.File, error) {
	return s.ownedFile(ctx, userID, fileID)
}

// Delete removes the metadata record, then deletes the object best-effort:
// a storage failure after the record is gone is logged, not surfaced.
func (s *FileService) Delete(ctx context.Context, userID, fileID string) error {
	file, err := s.ownedFile(ctx, userID, fileID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, file.ID); err != nil {
		return err
	}

	if err := s.objects.Delete(ctx, file.StorageKey); err != nil {
		s.log.Warn().Err(err).Str("key", file.StorageKey).Msg("failed to delete object")
	}
	return nil
}

func (s *FileService) DownloadURL(ctx context.Context, userID, fileID string) (string, error) {
	file, err := s.ownedFile(ctx, userID, fileID)
	if err != nil {
		return "", err
	}
	return s.objects.PresignGet(ctx, file.StorageKey)
}

func (s *FileService) PresignUpload(ctx context.Context, userID, fileName, fileType string) (*ports.PresignUploadResult, error) {
	key := storageKey(userID, fileName)
	url, err := s.objects.PresignPut(ctx, key, fileType)
	if err != nil {
		return nil, err
	}
	return &ports.PresignUploadResult{UploadURL: url, Key: key, Bucket: s.objects.Bucket()}, nil
}

func (s *FileService) PresignDownload(ctx context.Context, key string) (string, error) {
	return s.objects.PresignGet(ctx, key)
}

func (s *FileService) ownedFile(ctx context.Context, userID, fileID string) (*domain.File, error) {
	file, err := s.repo.FindByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return file, nil
}

// storageKey builds the object key: uploads/<user>/<unix-ms>-<name>.
func storageKey(userID, name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	return fmt.Sprintf("uploads/%s/%d-%s", userID, time.Now().UnixMilli(), name)
}
