package repository

import (
	"context"

	"fitlink-backend/internal/model"
	"gorm.io/gorm"
)

type ListingRepository interface {
	Create(ctx context.Context, l *model.Listing) error
	FindByID(ctx context.Context, id uint64) (*model.Listing, error)
	List(ctx context.Context, limit, offset int) ([]model.Listing, int64, error)
	ListBySeller(ctx context.Context, sellerUID string) ([]model.Listing, error)
	UpdateStatus(ctx context.Context, id uint64, status model.ListingStatus) error
	SetDB(db *gorm.DB)
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, l *model.Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *listingRepository) FindByID(ctx context.Context, id uint64) (*model.Listing, error) {
	var l model.Listing
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *listingRepository) List(ctx context.Context, limit, offset int) ([]model.Listing, int64, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.Listing{}).
		Where("status = ?", model.ListingStatusActive).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Listing
	if err := r.db.WithContext(ctx).
		Where("status = ?", model.ListingStatusActive).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *listingRepository) ListBySeller(ctx context.Context, sellerUID string) ([]model.Listing, error) {
	var list []model.Listing
	if err := r.db.WithContext(ctx).
		Where("seller_uid = ?", sellerUID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *listingRepository) UpdateStatus(ctx context.Context, id uint64, status model.ListingStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Listing{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *listingRepository) SetDB(db *gorm.DB) {
	r.db = db
}
