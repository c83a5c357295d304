package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"fitlink-backend/internal/model"
	"fitlink-backend/internal/service"
)

type FeedHandler struct {
	svc service.FeedService
}

func NewFeedHandler(svc service.FeedService) *FeedHandler {
	return &FeedHandler{svc: svc}
}

type PostResponse struct {
	ID        uint64  `json:"id"`
	AuthorUID string  `json:"authorUid"`
	Body      string  `json:"body"`
	ImageURL  *string `json:"imageUrl,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

func toPostResponse(p *model.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		AuthorUID: p.AuthorUID,
		Body:      p.Body,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

type CreatePostRequest struct {
	Body     string  `json:"body"`
	ImageURL *string `json:"imageUrl"`
}

func (h *FeedHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	p, err := h.svc.CreatePost(c.Request().Context(), uid, req.Body, req.ImageURL)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toPostResponse(p))
}

func (h *FeedHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	posts, total, err := h.svc.ListPosts(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch posts"))
	}
	resp := make([]PostResponse, 0, len(posts))
	for i := range posts {
		resp = append(resp, toPostResponse(&posts[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"posts": resp,
		"total": total,
	})
}

func (h *FeedHandler) Like(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	likes, err := h.svc.LikePost(c.Request().Context(), id, uid)
	if err != nil {
		return mapFeedError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"likes": likes})
}

type CreateCommentRequest struct {
	Body string `json:"body"`
}

func (h *FeedHandler) Comment(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	cm, err := h.svc.CommentPost(c.Request().Context(), id, uid, req.Body)
	if err != nil {
		return mapFeedError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"id":        cm.ID,
		"postId":    cm.PostID,
		"userUid":   cm.UserUID,
		"body":      cm.Body,
		"createdAt": cm.CreatedAt.Format(time.RFC3339),
	})
}

func (h *FeedHandler) ListComments(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	comments, err := h.svc.ListComments(c.Request().Context(), id, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch comments"))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"comments": comments})
}

func mapFeedError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "post not found"))
	case errors.Is(err, service.ErrInvalidAward):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_award", "amount must be positive"))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "could not save progress"))
	}
}
