package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"fitlink-backend/internal/realtime"
	"fitlink-backend/internal/service"
	"fitlink-backend/internal/xp"
)

type XPHandler struct {
	svc  service.XPService
	sync *realtime.SyncAdapter
}

func NewXPHandler(svc service.XPService, sync *realtime.SyncAdapter) *XPHandler {
	return &XPHandler{svc: svc, sync: sync}
}

type LedgerResponse struct {
	TotalXP       int  `json:"totalXp"`
	CurrentLevel  int  `json:"currentLevel"`
	XPToNextLevel int  `json:"xpToNextLevel"`
	NextLevelXP   *int `json:"nextLevelXp,omitempty"`
}

func toLedgerResponse(totalXP, level int) LedgerResponse {
	resp := LedgerResponse{
		TotalXP:       totalXP,
		CurrentLevel:  level,
		XPToNextLevel: xp.XPToNextLevel(totalXP),
	}
	if next, ok := xp.XPForLevel(level + 1); ok {
		resp.NextLevelXP = &next
	}
	return resp
}

func (h *XPHandler) GetMe(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	ledger, err := h.svc.Ledger(c.Request().Context(), uid)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch xp"))
	}
	return c.JSON(http.StatusOK, toLedgerResponse(ledger.TotalXP, ledger.CurrentLevel))
}

type AchievementResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	XPReward    int    `json:"xpReward"`
	Unlocked    bool   `json:"unlocked"`
}

func (h *XPHandler) ListAchievements(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	list, err := h.svc.Achievements(c.Request().Context(), uid)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch achievements"))
	}
	resp := make([]AchievementResponse, 0, len(list))
	for _, a := range list {
		resp = append(resp, AchievementResponse{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Icon:        a.Icon,
			XPReward:    a.XPReward,
			Unlocked:    a.Unlocked,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"achievements": resp})
}

type WearableSyncRequest struct {
	Steps          int `json:"steps"`
	CaloriesBurned int `json:"caloriesBurned"`
}

func (h *XPHandler) WearableSync(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req WearableSyncRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if req.Steps <= 0 && req.CaloriesBurned <= 0 {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "nothing to sync"))
	}
	ledger, err := h.svc.AddXP(c.Request().Context(), uid, 50, "Datos sincronizados")
	if err != nil {
		return mapXPError(c, err)
	}
	return c.JSON(http.StatusOK, toLedgerResponse(ledger.TotalXP, ledger.CurrentLevel))
}

// Stream pushes a ledger snapshot over SSE every time the backing row
// changes, so other devices of the same user converge without polling.
func (h *XPHandler) Stream(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ch, cancelWatch := h.sync.Watch(uid)
	defer cancelWatch()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ledger := <-ch:
			payload, err := json.Marshal(toLedgerResponse(ledger.TotalXP, ledger.CurrentLevel))
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(res, "event: ledger\ndata: %s\n\n", payload); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

func mapXPError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	case errors.Is(err, service.ErrInvalidAward):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_award", "amount must be positive"))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "could not save progress"))
	}
}
