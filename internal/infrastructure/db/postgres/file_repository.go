package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/drivehq/drive-api/internal/core/domain"
)

type FileRepository struct {
	db *sql.DB
}

func NewFileRepository(db *sql.DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Create(ctx context.Context, file *domain.File) (*domain.File, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO files (id, user_id, name, size, mime_type, storage_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		file.ID, file.UserID, file.Name, file.Size, file.MimeType, file.StorageKey, file.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert file: %w", err)
	}
	return r.FindByID(ctx, file.ID)
}

func (r *FileRepository) FindByID(ctx context.Context, id string) (*domain.File, error) {
	var f domain.File
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, size, mime_type, storage_key, created_at
		FROM files WHERE id = $1`, id).
		Scan(&f.ID, &f.UserID, &f.Name, &f.Size, &f.MimeType, &f.StorageKey, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("find file: %w", err)
	}
	return &f, nil
}

func (r *FileRepository) ListByUser(ctx context.Context, userID string) ([]*domain.File, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, size, mime_type, storage_key, created_at
		FROM files WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var result []*domain.File
	for rows.Next() {
		var f domain.File
		if err := rows.Scan(&f.ID, &f.UserID, &f.Name, &f.Size, &f.MimeType, &f.StorageKey, &f.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *FileRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrFileNotFound
	}
	return nil
}
