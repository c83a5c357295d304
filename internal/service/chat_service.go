package service

import (
	"context"
	"errors"

	"fitlink-backend/internal/model"
	"fitlink-backend/internal/repository"
	"gorm.io/gorm"
)

type ChatService interface {
	StartConversation(ctx context.Context, uid, otherUID string) (*model.Conversation, error)
	ListConversations(ctx context.Context, uid string) ([]model.Conversation, error)
	SendMessage(ctx context.Context, conversationID uint64, senderUID, body string, imageURL *string) (*model.Message, error)
	ListMessages(ctx context.Context, conversationID uint64, uid string, limit int) ([]model.Message, error)
}

type chatService struct {
	repo  repository.ConversationRepository
	xpSvc XPService
}

func NewChatService(repo repository.ConversationRepository, xpSvc XPService) ChatService {
	return &chatService{repo: repo, xpSvc: xpSvc}
}

func (s *chatService) StartConversation(ctx context.Context, uid, otherUID string) (*model.Conversation, error) {
	if uid == "" {
		return nil, ErrNotAuthenticated
	}
	if otherUID == "" || otherUID == uid {
		return nil, errors.New("invalid peer")
	}
	cv, created, err := s.repo.FindOrCreate(ctx, uid, otherUID)
	if err != nil {
		return nil, err
	}
	if created {
		if _, err := s.xpSvc.AddXP(ctx, uid, 50, "Chat iniciado"); err != nil {
			return cv, err
		}
		_ = s.xpSvc.UnlockAchievement(ctx, uid, "first_chat")
	}
	return cv, nil
}

func (s *chatService) ListConversations(ctx context.Context, uid string) ([]model.Conversation, error) {
	if uid == "" {
		return nil, ErrNotAuthenticated
	}
	return s.repo.ListForUser(ctx, uid)
}

func (s *chatService) SendMessage(ctx context.Context, conversationID uint64, senderUID, body string, imageURL *string) (*model.Message, error) {
	if senderUID == "" {
		return nil, ErrNotAuthenticated
	}
	if body == "" && imageURL == nil {
		return nil, errors.New("empty message")
	}
	cv, err := s.repo.FindByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if cv.UserAUID != senderUID && cv.UserBUID != senderUID {
		return nil, ErrForbidden
	}

	m := &model.Message{ConversationID: conversationID, SenderUID: senderUID, Body: body, ImageURL: imageURL}
	if err := s.repo.CreateMessage(ctx, m); err != nil {
		return nil, err
	}

	if imageURL != nil {
		if _, err := s.xpSvc.AddXP(ctx, senderUID, 75, "Imagen enviada"); err != nil {
			return m, err
		}
	} else {
		if _, err := s.xpSvc.AddXP(ctx, senderUID, 50, "Mensaje enviado"); err != nil {
			return m, err
		}
	}
	_ = s.xpSvc.UnlockAchievement(ctx, senderUID, "first_chat")
	return m, nil
}

func (s *chatService) ListMessages(ctx context.Context, conversationID uint64, uid string, limit int) ([]model.Message, error) {
	cv, err := s.repo.FindByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if cv.UserAUID != uid && cv.UserBUID != uid {
		return nil, ErrForbidden
	}
	return s.repo.ListMessages(ctx, conversationID, limit)
}
