package service

import (
	"context"
	"errors"
	"time"

	"fitlink-backend/internal/model"
	"fitlink-backend/internal/repository"
	"gorm.io/gorm"
)

type ChallengeService interface {
	Create(ctx context.Context, creatorUID, title, description, category string, startsAt, endsAt *time.Time) (*model.Challenge, error)
	Get(ctx context.Context, id uint64) (*model.Challenge, error)
	List(ctx context.Context, limit, offset int) ([]model.Challenge, int64, error)
	Join(ctx context.Context, challengeID uint64, uid string) (participants int64, err error)
}

type challengeService struct {
	repo  repository.ChallengeRepository
	xpSvc XPService
}

func NewChallengeService(repo repository.ChallengeRepository, xpSvc XPService) ChallengeService {
	return &challengeService{repo: repo, xpSvc: xpSvc}
}

func (s *challengeService) Create(ctx context.Context, creatorUID, title, description, category string, startsAt, endsAt *time.Time) (*model.Challenge, error) {
	if creatorUID == "" {
		return nil, ErrNotAuthenticated
	}
	if title == "" {
		return nil, errors.New("title is required")
	}
	c := &model.Challenge{
		CreatorUID:  creatorUID,
		Title:       title,
		Description: description,
		Category:    category,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *challengeService) Get(ctx context.Context, id uint64) (*model.Challenge, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *challengeService) List(ctx context.Context, limit, offset int) ([]model.Challenge, int64, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *challengeService) Join(ctx context.Context, challengeID uint64, uid string) (int64, error) {
	if uid == "" {
		return 0, ErrNotAuthenticated
	}
	if _, err := s.Get(ctx, challengeID); err != nil {
		return 0, err
	}
	already, err := s.repo.Join(ctx, challengeID, uid)
	if err != nil {
		return 0, err
	}
	if !already {
		if _, err := s.xpSvc.AddXP(ctx, uid, 150, "Reto aceptado"); err != nil {
			return 0, err
		}
		_ = s.xpSvc.UnlockAchievement(ctx, uid, "join_challenge")
	}
	return s.repo.CountParticipants(ctx, challengeID)
}
