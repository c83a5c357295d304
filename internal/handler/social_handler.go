package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"fitlink-backend/internal/model"
	"fitlink-backend/internal/service"
)

type SocialHandler struct {
	svc service.SocialService
}

func NewSocialHandler(svc service.SocialService) *SocialHandler {
	return &SocialHandler{svc: svc}
}

type SendRequestRequest struct {
	ToUID string `json:"toUid"`
}

func (h *SocialHandler) SendRequest(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req SendRequestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	fr, err := h.svc.SendRequest(c.Request().Context(), uid, req.ToUID)
	if err != nil {
		return mapSocialError(c, err)
	}
	return c.JSON(http.StatusCreated, fr)
}

func (h *SocialHandler) Accept(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	fr, err := h.svc.AcceptRequest(c.Request().Context(), id, uid)
	if err != nil {
		return mapSocialError(c, err)
	}
	return c.JSON(http.StatusOK, fr)
}

func (h *SocialHandler) Reject(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	if err := h.svc.RejectRequest(c.Request().Context(), id, uid); err != nil {
		return mapSocialError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SocialHandler) List(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	status := model.FriendRequestStatus(c.QueryParam("status"))
	if status == "" {
		status = model.FriendRequestStatusPending
	}
	reqs, err := h.svc.ListRequests(c.Request().Context(), uid, status)
	if err != nil {
		return mapSocialError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"requests": reqs})
}

func mapSocialError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "request not found"))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not the recipient"))
	case errors.Is(err, service.ErrAlreadyRequested):
		return c.JSON(http.StatusConflict, NewErrorResponse("conflict", "request already sent"))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "social operation failed"))
	}
}
