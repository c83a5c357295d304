package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"fitlink-backend/internal/service"
)

type MarketplaceHandler struct {
	svc service.MarketplaceService
}

func NewMarketplaceHandler(svc service.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{svc: svc}
}

type CreateListingRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       uint    `json:"price"`
	ImageURL    *string `json:"imageUrl"`
}

func (h *MarketplaceHandler) CreateListing(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req CreateListingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	l, err := h.svc.CreateListing(c.Request().Context(), uid, req.Title, req.Description, req.Price, req.ImageURL)
	if err != nil {
		return mapMarketplaceError(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *MarketplaceHandler) GetListing(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	l, err := h.svc.GetListing(c.Request().Context(), id)
	if err != nil {
		return mapMarketplaceError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *MarketplaceHandler) ListListings(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	ls, total, err := h.svc.ListListings(c.Request().Context(), limit, offset)
	if err != nil {
		return mapMarketplaceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"listings": ls,
		"total":    total,
	})
}

func (h *MarketplaceHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	ls, err := h.svc.ListMine(c.Request().Context(), uid)
	if err != nil {
		return mapMarketplaceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"listings": ls})
}

func (h *MarketplaceHandler) PlaceOrder(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	o, err := h.svc.PlaceOrder(c.Request().Context(), id, uid)
	if err != nil {
		return mapMarketplaceError(c, err)
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *MarketplaceHandler) CompleteOrder(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	o, err := h.svc.CompleteOrder(c.Request().Context(), id, uid)
	if err != nil {
		return mapMarketplaceError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *MarketplaceHandler) CancelOrder(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	if err := h.svc.CancelOrder(c.Request().Context(), id, uid); err != nil {
		return mapMarketplaceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MarketplaceHandler) ListOrders(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	os, err := h.svc.ListOrders(c.Request().Context(), uid)
	if err != nil {
		return mapMarketplaceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"orders": os})
}

func mapMarketplaceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "not found"))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
	case errors.Is(err, service.ErrAlreadyOrdered):
		return c.JSON(http.StatusConflict, NewErrorResponse("conflict", "listing already ordered"))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "marketplace operation failed"))
	}
}
