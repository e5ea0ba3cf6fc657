package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/drivehq/drive-api/internal/api/metrics"
	"github.com/drivehq/drive-api/internal/core/ports"
)

// StorageHandler exposes raw presigned-URL issuance against object storage,
// without touching file metadata.
type StorageHandler struct {
	service ports.FileService
}

func NewStorageHandler(service ports.FileService) *StorageHandler {
	return &StorageHandler{service: service}
}

// PresignUpload handles POST /v1/storage/presigned-url.
//
// @Summary      Get a presigned upload URL
// @Tags         storage
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      presignUploadRequest  true  "File name and content type"
// @Success      200   {object}  presignUploadResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/storage/presigned-url [post]
func (h *StorageHandler) PresignUpload(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req presignUploadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	res, err := h.service.PresignUpload(c.Request().Context(), ident.ID, req.FileName, req.FileType)
	if err != nil {
		return err
	}

	metrics.PresignedURLsTotal.WithLabelValues("put").Inc()
	return c.JSON(http.StatusOK, presignUploadResponse{
		UploadURL: res.UploadURL,
		Key:       res.Key,
		Bucket:    res.Bucket,
	})
}

// PresignDownload handles GET /v1/storage/presigned-url/*. The wildcard is
// the object key, which contains slashes. The key is not checked against
// the caller's own files: any authenticated user can obtain a URL for any
// key they know. Per-file ownership checks live on the /v1/files routes.
//
// @Summary      Get a presigned download URL for an object key
// @Tags         storage
// @Produce      json
// @Security     BearerAuth
// @Param        key  path      string  true  "Object storage key"
// @Success      200  {object}  downloadResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /v1/storage/presigned-url/{key} [get]
func (h *StorageHandler) PresignDownload(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	key := c.Param("*")
	if key == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "key is required"})
	}

	url, err := h.service.PresignDownload(c.Request().Context(), key)
	if err != nil {
		return err
	}

	metrics.PresignedURLsTotal.WithLabelValues("get").Inc()
	return c.JSON(http.StatusOK, downloadResponse{DownloadURL: url})
}
