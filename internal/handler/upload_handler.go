package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"fitlink-backend/internal/storage"
)

// 8 MiB, matches the client's image size cap.
const maxUploadBytes = 8 << 20

type UploadHandler struct {
	uploader storage.Uploader
}

func NewUploadHandler(uploader storage.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

func (h *UploadHandler) Upload(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	if h.uploader == nil {
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("unavailable", "storage is not configured"))
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "file is required"))
	}
	if fh.Size > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, NewErrorResponse("too_large", "file exceeds size limit"))
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "could not read file"))
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "could not read file"))
	}
	if len(data) > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, NewErrorResponse("too_large", "file exceeds size limit"))
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	folder := c.QueryParam("folder")
	if folder == "" {
		folder = "uploads"
	}
	url, err := h.uploader.Upload(c.Request().Context(), folder, data, contentType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "upload failed"))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"url": url})
}
