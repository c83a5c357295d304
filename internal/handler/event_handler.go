package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"fitlink-backend/internal/service"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

type CreateEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    *time.Time `json:"startsAt"`
}

func (h *EventHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	ev, err := h.svc.Create(c.Request().Context(), uid, req.Title, req.Description, req.Location, req.StartsAt)
	if err != nil {
		return mapEventError(c, err)
	}
	return c.JSON(http.StatusCreated, ev)
}

func (h *EventHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	ev, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return mapEventError(c, err)
	}
	return c.JSON(http.StatusOK, ev)
}

func (h *EventHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	evs, total, err := h.svc.List(c.Request().Context(), limit, offset)
	if err != nil {
		return mapEventError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"events": evs,
		"total":  total,
	})
}

func (h *EventHandler) Register(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	registrations, err := h.svc.Register(c.Request().Context(), id, uid)
	if err != nil {
		return mapEventError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"registrations": registrations})
}

func mapEventError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "event not found"))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "event operation failed"))
	}
}
