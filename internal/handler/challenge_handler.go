package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"fitlink-backend/internal/service"
)

type ChallengeHandler struct {
	svc service.ChallengeService
}

func NewChallengeHandler(svc service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{svc: svc}
}

type CreateChallengeRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	StartsAt    *time.Time `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
}

func (h *ChallengeHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req CreateChallengeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	ch, err := h.svc.Create(c.Request().Context(), uid, req.Title, req.Description, req.Category, req.StartsAt, req.EndsAt)
	if err != nil {
		return mapChallengeError(c, err)
	}
	return c.JSON(http.StatusCreated, ch)
}

func (h *ChallengeHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	ch, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return mapChallengeError(c, err)
	}
	return c.JSON(http.StatusOK, ch)
}

func (h *ChallengeHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	chs, total, err := h.svc.List(c.Request().Context(), limit, offset)
	if err != nil {
		return mapChallengeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"challenges": chs,
		"total":      total,
	})
}

func (h *ChallengeHandler) Join(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	participants, err := h.svc.Join(c.Request().Context(), id, uid)
	if err != nil {
		return mapChallengeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"participants": participants})
}

func mapChallengeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "challenge not found"))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "challenge operation failed"))
	}
}
