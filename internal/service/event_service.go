package service

import (
	"context"
	"errors"
	"time"

	"fitlink-backend/internal/model"
	"fitlink-backend/internal/repository"
	"gorm.io/gorm"
)

type EventService interface {
	Create(ctx context.Context, creatorUID, title, description, location string, startsAt *time.Time) (*model.Event, error)
	Get(ctx context.Context, id uint64) (*model.Event, error)
	List(ctx context.Context, limit, offset int) ([]model.Event, int64, error)
	Register(ctx context.Context, eventID uint64, uid string) (registrations int64, err error)
}

type eventService struct {
	repo     repository.EventRepository
	xpSvc    XPService
	notifier Notifier
}

func NewEventService(repo repository.EventRepository, xpSvc XPService, notifier Notifier) EventService {
	return &eventService{repo: repo, xpSvc: xpSvc, notifier: notifier}
}

func (s *eventService) Create(ctx context.Context, creatorUID, title, description, location string, startsAt *time.Time) (*model.Event, error) {
	if creatorUID == "" {
		return nil, ErrNotAuthenticated
	}
	if title == "" {
		return nil, errors.New("title is required")
	}
	e := &model.Event{
		CreatorUID:  creatorUID,
		Title:       title,
		Description: description,
		Location:    location,
		StartsAt:    startsAt,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *eventService) Get(ctx context.Context, id uint64) (*model.Event, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *eventService) List(ctx context.Context, limit, offset int) ([]model.Event, int64, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *eventService) Register(ctx context.Context, eventID uint64, uid string) (int64, error) {
	if uid == "" {
		return 0, ErrNotAuthenticated
	}
	e, err := s.Get(ctx, eventID)
	if err != nil {
		return 0, err
	}
	already, err := s.repo.Register(ctx, eventID, uid)
	if err != nil {
		return 0, err
	}
	if !already {
		if _, err := s.xpSvc.AddXP(ctx, uid, 100, "Inscripción a evento"); err != nil {
			return 0, err
		}
		_ = s.xpSvc.UnlockAchievement(ctx, uid, "attend_event")
		s.notifier.Notify(ctx, e.CreatorUID, model.NotificationTypeEvent,
			"Nueva inscripción", "Alguien se inscribió a "+e.Title, 3000)
	}
	return s.repo.CountRegistrations(ctx, eventID)
}
