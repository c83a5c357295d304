package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestAuthUnavailableRejectsEveryRequest(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextCalled := false
	h := authUnavailable(func(echo.Context) error {
		nextCalled = true
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if nextCalled {
		t.Fatal("handler ran although auth is not configured")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
