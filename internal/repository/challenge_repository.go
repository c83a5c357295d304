package repository

import (
	"context"

	"fitlink-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChallengeRepository interface {
	Create(ctx context.Context, c *model.Challenge) error
	FindByID(ctx context.Context, id uint64) (*model.Challenge, error)
	List(ctx context.Context, limit, offset int) ([]model.Challenge, int64, error)
	// Join returns already=true when the user was a participant before.
	Join(ctx context.Context, challengeID uint64, uid string) (already bool, err error)
	CountParticipants(ctx context.Context, challengeID uint64) (int64, error)
	SetDB(db *gorm.DB)
}

type challengeRepository struct {
	db *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

func (r *challengeRepository) Create(ctx context.Context, c *model.Challenge) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *challengeRepository) FindByID(ctx context.Context, id uint64) (*model.Challenge, error) {
	var c model.Challenge
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *challengeRepository) List(ctx context.Context, limit, offset int) ([]model.Challenge, int64, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Challenge{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Challenge
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *challengeRepository) Join(ctx context.Context, challengeID uint64, uid string) (bool, error) {
	p := model.ChallengeParticipant{ChallengeID: challengeID, UserUID: uid}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&p)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 0, nil
}

func (r *challengeRepository) CountParticipants(ctx context.Context, challengeID uint64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.ChallengeParticipant{}).
		Where("challenge_id = ?", challengeID).
		Count(&cnt).Error
	return cnt, err
}

func (r *challengeRepository) SetDB(db *gorm.DB) {
	r.db = db
}
