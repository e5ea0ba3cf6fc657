package domain

import "time"

// File describes metadata for a stored object. The bytes themselves live in
// object storage under StorageKey; only metadata is persisted here.
type File struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mime_type"`
	StorageKey string    `json:"storage_key"`
	CreatedAt  time.Time `json:"created_at"`
}
