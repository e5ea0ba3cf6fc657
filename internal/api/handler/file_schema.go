package handler

import "github.com/drivehq/drive-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type createFileRequest struct {
	Name     string `json:"name"      validate:"required"`
	Size     int64  `json:"size"      validate:"required,gt=0"`
	MimeType string `json:"mime_type" validate:"required"`
}

type createFileResponse struct {
	File      *domain.File `json:"file"`
	UploadURL string       `json:"uploadUrl"`
}

type listFilesResponse struct {
	Files []*domain.File `json:"files"`
}

type downloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

type presignUploadRequest struct {
	FileName string `json:"fileName" validate:"required"`
	FileType string `json:"fileType" validate:"required"`
}

type presignUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
	Bucket    string `json:"bucket"`
}
