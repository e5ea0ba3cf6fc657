package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/drivehq/drive-api/internal/api/metrics"
	"github.com/drivehq/drive-api/internal/core/domain"
	"github.com/drivehq/drive-api/internal/core/ports"
)

// FileHandler handles HTTP requests for file-metadata operations.
type FileHandler struct {
	service ports.FileService
}

func NewFileHandler(service ports.FileService) *FileHandler {
	return &FileHandler{service: service}
}

// List handles GET /v1/files.
//
// @Summary      List the authenticated user's files
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listFilesResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/files [get]
func (h *FileHandler) List(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	files, err := h.service.List(c.Request().Context(), ident.ID)
	if err != nil {
		return err
	}
	if files == nil {
		files = []*domain.File{}
	}

	return c.JSON(http.StatusOK, listFilesResponse{Files: files})
}

// Create handles POST /v1/files: registers metadata and returns a presigned
// upload URL.
//
// @Summary      Register a file and get an upload URL
// @Tags         files
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createFileRequest  true   "File metadata"
// @Success      201              {object}  createFileResponse
// @Failure      400              {object}  map[string]string
// @Failure      401              {object}  map[string]string
// @Failure      409              {object}  map[string]string
// @Router       /v1/files [post]
func (h *FileHandler) Create(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createFileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	res, err := h.service.Create(c.Request().Context(), ident.ID, ports.CreateFileInput{
		Name:           req.Name,
		Size:           req.Size,
		MimeType:       req.MimeType,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	metrics.FilesCreatedTotal.Inc()
	metrics.PresignedURLsTotal.WithLabelValues("put").Inc()
	return c.JSON(http.StatusCreated, createFileResponse{File: res.File, UploadURL: res.UploadURL})
}

// Get handles GET /v1/files/:id.
//
// @Summary      Get file metadata
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "File ID"
// @Success      200  {object}  domain.File
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/files/{id} [get]
func (h *FileHandler) Get(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	file, err := h.service.Get(c.Request().Context(), ident.ID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, file)
}

// Delete handles DELETE /v1/files/:id.
//
// @Summary      Delete a file and its stored object
// @Tags         files
// @Security     BearerAuth
// @Param        id  path  string  true  "File ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/files/{id} [delete]
func (h *FileHandler) Delete(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), ident.ID, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Download handles GET /v1/files/:id/download: returns a presigned GET URL,
// never the bytes themselves.
//
// @Summary      Get a presigned download URL for a file
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "File ID"
// @Success      200  {object}  downloadResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/files/{id}/download [get]
func (h *FileHandler) Download(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	url, err := h.service.DownloadURL(c.Request().Context(), ident.ID, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.PresignedURLsTotal.WithLabelValues("get").Inc()
	return c.JSON(http.StatusOK, downloadResponse{DownloadURL: url})
}
