package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"fitlink-backend/internal/service"
)

type PlaceHandler struct {
	svc service.PlaceService
}

func NewPlaceHandler(svc service.PlaceService) *PlaceHandler {
	return &PlaceHandler{svc: svc}
}

type CreatePlaceRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Address  string  `json:"address"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

func (h *PlaceHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req CreatePlaceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	p, err := h.svc.Create(c.Request().Context(), uid, req.Name, req.Category, req.Address, req.Lat, req.Lng)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *PlaceHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "place not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch place"))
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PlaceHandler) List(c echo.Context) error {
	category := c.QueryParam("category")
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	places, err := h.svc.List(c.Request().Context(), category, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch places"))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"places": places})
}
