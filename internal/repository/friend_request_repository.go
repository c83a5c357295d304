package repository

import (
	"context"

	"fitlink-backend/internal/model"
	"gorm.io/gorm"
)

type FriendRequestRepository interface {
	Create(ctx context.Context, fr *model.FriendRequest) error
	FindByID(ctx context.Context, id uint64) (*model.FriendRequest, error)
	FindBetween(ctx context.Context, fromUID, toUID string) (*model.FriendRequest, error)
	UpdateStatus(ctx context.Context, id uint64, status model.FriendRequestStatus) error
	ListForUser(ctx context.Context, uid string, status model.FriendRequestStatus) ([]model.FriendRequest, error)
	CountMatches(ctx context.Context, uid string) (int64, error)
	SetDB(db *gorm.DB)
}

type friendRequestRepository struct {
	db *gorm.DB
}

func NewFriendRequestRepository(db *gorm.DB) FriendRequestRepository {
	return &friendRequestRepository{db: db}
}

func (r *friendRequestRepository) Create(ctx context.Context, fr *model.FriendRequest) error {
	return r.db.WithContext(ctx).Create(fr).Error
}

func (r *friendRequestRepository) FindByID(ctx context.Context, id uint64) (*model.FriendRequest, error) {
	var fr model.FriendRequest
	if err := r.db.WithContext(ctx).First(&fr, id).Error; err != nil {
		return nil, err
	}
	return &fr, nil
}

func (r *friendRequestRepository) FindBetween(ctx context.Context, fromUID, toUID string) (*model.FriendRequest, error) {
	var fr model.FriendRequest
	err := r.db.WithContext(ctx).
		Where("(from_uid = ? AND to_uid = ?) OR (from_uid = ? AND to_uid = ?)", fromUID, toUID, toUID, fromUID).
		First(&fr).Error
	if err != nil {
		return nil, err
	}
	return &fr, nil
}

func (r *friendRequestRepository) UpdateStatus(ctx context.Context, id uint64, status model.FriendRequestStatus) error {
	now := r.db.NowFunc()
	return r.db.WithContext(ctx).
		Model(&model.FriendRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"responded_at": now,
		}).Error
}

func (r *friendRequestRepository) ListForUser(ctx context.Context, uid string, status model.FriendRequestStatus) ([]model.FriendRequest, error) {
	var list []model.FriendRequest
	q := r.db.WithContext(ctx).
		Where("from_uid = ? OR to_uid = ?", uid, uid)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *friendRequestRepository) CountMatches(ctx context.Context, uid string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.FriendRequest{}).
		Where("status = ? AND (from_uid = ? OR to_uid = ?)", model.FriendRequestStatusAccepted, uid, uid).
		Count(&cnt).Error
	return cnt, err
}

func (r *friendRequestRepository) SetDB(db *gorm.DB) {
	r.db = db
}
