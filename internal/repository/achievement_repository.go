package repository

import (
	"context"

	"fitlink-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository interface {
	IsUnlocked(ctx context.Context, uid, achievementID string) (bool, error)
	// SetUnlocked marks the achievement unlocked. already reports whether the
	// row existed before this call; repeating the call never mutates again.
	SetUnlocked(ctx context.Context, uid, achievementID string) (already bool, err error)
	ListByUser(ctx context.Context, uid string) ([]model.UserAchievement, error)
	SetDB(db *gorm.DB)
}

type achievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) IsUnlocked(ctx context.Context, uid, achievementID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.UserAchievement{}).
		Where("uid = ? AND achievement_id = ?", uid, achievementID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *achievementRepository) SetUnlocked(ctx context.Context, uid, achievementID string) (bool, error) {
	ua := model.UserAchievement{UID: uid, AchievementID: achievementID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ua)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 0, nil
}

func (r *achievementRepository) ListByUser(ctx context.Context, uid string) ([]model.UserAchievement, error) {
	var list []model.UserAchievement
	if err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("unlocked_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *achievementRepository) SetDB(db *gorm.DB) {
	r.db = db
}
