package service

import (
	"context"

	"fitlink-backend/internal/model"
	"fitlink-backend/internal/repository"
)

type NotificationService interface {
	Notifier
	List(ctx context.Context, userUID string, unreadOnly bool, limit int) ([]model.Notification, int64, error)
	MarkAllRead(ctx context.Context, userUID string) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

// Notify is best-effort; failures are swallowed so they never break the
// awarding flow that triggered the toast.
func (s *notificationService) Notify(ctx context.Context, userUID, typ, title, body string, durationMs int) {
	if userUID == "" || typ == "" {
		return
	}
	if durationMs <= 0 {
		durationMs = 2000
	}
	n := &model.Notification{
		UserUID:    userUID,
		Type:       typ,
		Title:      title,
		Body:       body,
		DurationMs: durationMs,
	}
	_ = s.repo.Create(ctx, n)
}

func (s *notificationService) List(ctx context.Context, userUID string, unreadOnly bool, limit int) ([]model.Notification, int64, error) {
	if userUID == "" {
		return nil, 0, nil
	}
	list, err := s.repo.ListByUser(ctx, userUID, unreadOnly, limit)
	if err != nil {
		return nil, 0, err
	}
	cnt, err := s.repo.CountUnread(ctx, userUID)
	if err != nil {
		return list, 0, err
	}
	return list, cnt, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userUID string) error {
	if userUID == "" {
		return nil
	}
	return s.repo.MarkAllRead(ctx, userUID)
}
