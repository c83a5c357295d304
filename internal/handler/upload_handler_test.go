package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type fakeUploader struct {
	calls int
	url   string
}

func (f *fakeUploader) Upload(ctx context.Context, folder string, data []byte, contentType string) (string, error) {
	f.calls++
	return f.url, nil
}

func (f *fakeUploader) Close() error { return nil }

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadRejectsMissingUID(t *testing.T) {
	up := &fakeUploader{url: "https://example.com/x"}
	h := NewUploadHandler(up)

	body, contentType := multipartBody(t, "file", "a.jpg", []byte("jpeg bytes"))
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Upload(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if up.calls != 0 {
		t.Fatalf("uploader was called %d times for an unauthenticated request", up.calls)
	}
}

func TestUploadAcceptsAuthenticatedRequest(t *testing.T) {
	up := &fakeUploader{url: "https://example.com/x"}
	h := NewUploadHandler(up)

	body, contentType := multipartBody(t, "file", "a.jpg", []byte("jpeg bytes"))
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("uid", "user-1")

	if err := h.Upload(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if up.calls != 1 {
		t.Fatalf("uploader calls = %d, want 1", up.calls)
	}
}
