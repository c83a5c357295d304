package repository

import (
	"context"

	"fitlink-backend/internal/model"
	"gorm.io/gorm"
)

type ConversationRepository interface {
	// FindOrCreate returns created=true when the pair had no conversation yet.
	FindOrCreate(ctx context.Context, uidA, uidB string) (conv *model.Conversation, created bool, err error)
	FindByID(ctx context.Context, id uint64) (*model.Conversation, error)
	ListForUser(ctx context.Context, uid string) ([]model.Conversation, error)
	CreateMessage(ctx context.Context, m *model.Message) error
	ListMessages(ctx context.Context, conversationID uint64, limit int) ([]model.Message, error)
	CountMessagesBySender(ctx context.Context, uid string) (int64, error)
	SetDB(db *gorm.DB)
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) FindOrCreate(ctx context.Context, uidA, uidB string) (*model.Conversation, bool, error) {
	// normalize the pair so (a,b) and (b,a) hit the same row
	if uidB < uidA {
		uidA, uidB = uidB, uidA
	}
	var cv model.Conversation
	res := r.db.WithContext(ctx).
		Where("user_a_uid = ? AND user_b_uid = ?", uidA, uidB).
		FirstOrCreate(&cv, &model.Conversation{UserAUID: uidA, UserBUID: uidB})
	if res.Error != nil {
		return nil, false, res.Error
	}
	return &cv, res.RowsAffected > 0, nil
}

func (r *conversationRepository) FindByID(ctx context.Context, id uint64) (*model.Conversation, error) {
	var cv model.Conversation
	if err := r.db.WithContext(ctx).First(&cv, id).Error; err != nil {
		return nil, err
	}
	return &cv, nil
}

func (r *conversationRepository) ListForUser(ctx context.Context, uid string) ([]model.Conversation, error) {
	var list []model.Conversation
	if err := r.db.WithContext(ctx).
		Where("user_a_uid = ? OR user_b_uid = ?", uid, uid).
		Order("updated_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *conversationRepository) CreateMessage(ctx context.Context, m *model.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *conversationRepository) ListMessages(ctx context.Context, conversationID uint64, limit int) ([]model.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	var list []model.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *conversationRepository) CountMessagesBySender(ctx context.Context, uid string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("sender_uid = ?", uid).
		Count(&cnt).Error
	return cnt, err
}

func (r *conversationRepository) SetDB(db *gorm.DB) {
	r.db = db
}
