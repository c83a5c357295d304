package service

import (
	"context"
	"errors"
	"fmt"

	"fitlink-backend/internal/model"
	"fitlink-backend/internal/repository"
	"fitlink-backend/internal/xp"
)

var ErrNotAuthenticated = errors.New("not_authenticated")
var ErrInvalidAward = errors.New("invalid_award")

// Notifier surfaces user-visible toasts. Implementations are fire-and-forget;
// no error may reach the engine's control flow.
type Notifier interface {
	Notify(ctx context.Context, userUID, typ, title, body string, durationMs int)
}

// AchievementStatus joins a catalog entry with the user's unlock state.
type AchievementStatus struct {
	xp.Achievement
	Unlocked bool
}

// XPService orchestrates XP awards: it mutates the ledger, detects level
// boundary crossings, unlocks achievements and emits notifications, in that
// order. It is the only writer of ledger and unlock state.
type XPService interface {
	AddXP(ctx context.Context, uid string, amount int, reason string) (*model.XPLedger, error)
	UnlockAchievement(ctx context.Context, uid, achievementID string) error
	Ledger(ctx context.Context, uid string) (*model.XPLedger, error)
	Achievements(ctx context.Context, uid string) ([]AchievementStatus, error)
}

type xpService struct {
	ledgerRepo repository.XPLedgerRepository
	achRepo    repository.AchievementRepository
	notifier   Notifier
}

// An achievement reward can level the user up and unlock another level-keyed
// achievement, whose reward cascades again. Each catalog id fires at most
// once so the chain converges; the depth cap bounds it structurally as well.
const maxCascadeDepth = 3

func NewXPService(ledgerRepo repository.XPLedgerRepository, achRepo repository.AchievementRepository, notifier Notifier) XPService {
	return &xpService{ledgerRepo: ledgerRepo, achRepo: achRepo, notifier: notifier}
}

func (s *xpService) AddXP(ctx context.Context, uid string, amount int, reason string) (*model.XPLedger, error) {
	return s.addXP(ctx, uid, amount, reason, 0)
}

func (s *xpService) addXP(ctx context.Context, uid string, amount int, reason string, depth int) (*model.XPLedger, error) {
	if uid == "" {
		return nil, ErrNotAuthenticated
	}
	if amount <= 0 {
		return nil, ErrInvalidAward
	}

	before, after, err := s.ledgerRepo.Increment(ctx, uid, amount)
	if err != nil {
		// nothing was persisted, so nothing is surfaced
		return nil, err
	}

	s.notifier.Notify(ctx, uid, model.NotificationTypeXPGain,
		fmt.Sprintf("+%d XP", amount), reason, 2000)

	if after.CurrentLevel > before.CurrentLevel {
		// one notification per award, naming the final level reached
		s.notifier.Notify(ctx, uid, model.NotificationTypeLevelUp,
			fmt.Sprintf("¡Nivel %d!", after.CurrentLevel),
			fmt.Sprintf("¡Has alcanzado el nivel %d!", after.CurrentLevel), 3000)
		if depth < maxCascadeDepth {
			if err := s.unlock(ctx, uid, xp.LevelAchievementID(after.CurrentLevel), depth); err != nil {
				return after, err
			}
		}
	}
	return after, nil
}

func (s *xpService) UnlockAchievement(ctx context.Context, uid, achievementID string) error {
	if uid == "" {
		return ErrNotAuthenticated
	}
	return s.unlock(ctx, uid, achievementID, 0)
}

func (s *xpService) unlock(ctx context.Context, uid, achievementID string, depth int) error {
	a, ok := xp.AchievementByID(achievementID)
	if !ok {
		return nil
	}
	already, err := s.achRepo.SetUnlocked(ctx, uid, achievementID)
	if err != nil {
		return err
	}
	if already {
		return nil
	}

	s.notifier.Notify(ctx, uid, model.NotificationTypeAchievement,
		"¡Logro Desbloqueado!",
		fmt.Sprintf("%s %s - +%d XP", a.Icon, a.Name, a.XPReward), 4000)

	if a.XPReward > 0 {
		if _, err := s.addXP(ctx, uid, a.XPReward, a.Name, depth+1); err != nil {
			// The unlock itself stays committed; the reward is not retried
			// because a repeated unlock is a no-op.
			return err
		}
	}
	return nil
}

func (s *xpService) Ledger(ctx context.Context, uid string) (*model.XPLedger, error) {
	if uid == "" {
		return nil, ErrNotAuthenticated
	}
	return s.ledgerRepo.Get(ctx, uid)
}

func (s *xpService) Achievements(ctx context.Context, uid string) ([]AchievementStatus, error) {
	if uid == "" {
		return nil, ErrNotAuthenticated
	}
	unlocked, err := s.achRepo.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(unlocked))
	for _, ua := range unlocked {
		set[ua.AchievementID] = true
	}
	catalog := xp.Achievements()
	out := make([]AchievementStatus, 0, len(catalog))
	for _, a := range catalog {
		out = append(out, AchievementStatus{Achievement: a, Unlocked: set[a.ID]})
	}
	return out, nil
}
