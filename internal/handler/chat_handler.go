package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"fitlink-backend/internal/service"
)

type ChatHandler struct {
	svc service.ChatService
}

func NewChatHandler(svc service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type StartConversationRequest struct {
	OtherUID string `json:"otherUid"`
}

func (h *ChatHandler) Start(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req StartConversationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	conv, err := h.svc.StartConversation(c.Request().Context(), uid, req.OtherUID)
	if err != nil {
		return mapChatError(c, err)
	}
	return c.JSON(http.StatusOK, conv)
}

func (h *ChatHandler) ListConversations(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	convs, err := h.svc.ListConversations(c.Request().Context(), uid)
	if err != nil {
		return mapChatError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"conversations": convs})
}

type SendMessageRequest struct {
	Body     string  `json:"body"`
	ImageURL *string `json:"imageUrl"`
}

func (h *ChatHandler) Send(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	msg, err := h.svc.SendMessage(c.Request().Context(), id, uid, req.Body, req.ImageURL)
	if err != nil {
		return mapChatError(c, err)
	}
	return c.JSON(http.StatusCreated, msg)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	msgs, err := h.svc.ListMessages(c.Request().Context(), id, uid, limit)
	if err != nil {
		return mapChatError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"messages": msgs})
}

func mapChatError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "conversation not found"))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not a participant"))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "chat operation failed"))
	}
}
