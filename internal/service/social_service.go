package service

import (
	"context"
	"errors"

	"fitlink-backend/internal/model"
	"fitlink-backend/internal/repository"
	"gorm.io/gorm"
)

var ErrAlreadyRequested = errors.New("already_requested")

const butterflyMatchTarget = 10

type SocialService interface {
	SendRequest(ctx context.Context, fromUID, toUID string) (*model.FriendRequest, error)
	AcceptRequest(ctx context.Context, requestID uint64, uid string) (*model.FriendRequest, error)
	RejectRequest(ctx context.Context, requestID uint64, uid string) error
	ListRequests(ctx context.Context, uid string, status model.FriendRequestStatus) ([]model.FriendRequest, error)
}

type socialService struct {
	repo  repository.FriendRequestRepository
	xpSvc XPService
}

func NewSocialService(repo repository.FriendRequestRepository, xpSvc XPService) SocialService {
	return &socialService{repo: repo, xpSvc: xpSvc}
}

func (s *socialService) SendRequest(ctx context.Context, fromUID, toUID string) (*model.FriendRequest, error) {
	if fromUID == "" {
		return nil, ErrNotAuthenticated
	}
	if toUID == "" || toUID == fromUID {
		return nil, errors.New("invalid peer")
	}
	if existing, err := s.repo.FindBetween(ctx, fromUID, toUID); err == nil && existing != nil {
		return existing, ErrAlreadyRequested
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fr := &model.FriendRequest{FromUID: fromUID, ToUID: toUID, Status: model.FriendRequestStatusPending}
	if err := s.repo.Create(ctx, fr); err != nil {
		return nil, err
	}
	if _, err := s.xpSvc.AddXP(ctx, fromUID, 25, "Solicitud de amistad enviada"); err != nil {
		return fr, err
	}
	return fr, nil
}

// AcceptRequest turns a pending request into a match. Both sides get match
// XP and a shot at the match achievements.
func (s *socialService) AcceptRequest(ctx context.Context, requestID uint64, uid string) (*model.FriendRequest, error) {
	if uid == "" {
		return nil, ErrNotAuthenticated
	}
	fr, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if fr.ToUID != uid {
		return nil, ErrForbidden
	}
	if fr.Status != model.FriendRequestStatusPending {
		return fr, nil
	}
	if err := s.repo.UpdateStatus(ctx, fr.ID, model.FriendRequestStatusAccepted); err != nil {
		return nil, err
	}
	fr.Status = model.FriendRequestStatusAccepted

	if _, err := s.xpSvc.AddXP(ctx, fr.ToUID, 150, "Match aceptado"); err != nil {
		return fr, err
	}
	_ = s.xpSvc.UnlockAchievement(ctx, fr.ToUID, "first_match")
	if _, err := s.xpSvc.AddXP(ctx, fr.FromUID, 150, "Nuevo match creado"); err != nil {
		return fr, err
	}
	_ = s.xpSvc.UnlockAchievement(ctx, fr.FromUID, "first_match")

	for _, u := range []string{fr.FromUID, fr.ToUID} {
		if cnt, err := s.repo.CountMatches(ctx, u); err == nil && cnt >= butterflyMatchTarget {
			_ = s.xpSvc.UnlockAchievement(ctx, u, "social_butterfly")
		}
	}
	return fr, nil
}

func (s *socialService) RejectRequest(ctx context.Context, requestID uint64, uid string) error {
	fr, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if fr.ToUID != uid {
		return ErrForbidden
	}
	if fr.Status != model.FriendRequestStatusPending {
		return nil
	}
	return s.repo.UpdateStatus(ctx, fr.ID, model.FriendRequestStatusRejected)
}

func (s *socialService) ListRequests(ctx context.Context, uid string, status model.FriendRequestStatus) ([]model.FriendRequest, error) {
	if uid == "" {
		return nil, ErrNotAuthenticated
	}
	return s.repo.ListForUser(ctx, uid, status)
}
