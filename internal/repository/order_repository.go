package repository

import (
	"context"

	"fitlink-backend/internal/model"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id uint64) (*model.Order, error)
	FindByListing(ctx context.Context, listingID uint64) (*model.Order, error)
	MarkCompleted(ctx context.Context, id uint64) error
	MarkCanceled(ctx context.Context, id uint64) error
	ListByBuyer(ctx context.Context, buyerUID string) ([]model.Order, error)
	SetDB(db *gorm.DB)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uint64) (*model.Order, error) {
	var o model.Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) FindByListing(ctx context.Context, listingID uint64) (*model.Order, error) {
	var o model.Order
	if err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) MarkCompleted(ctx context.Context, id uint64) error {
	now := r.db.NowFunc()
	return r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND status = ?", id, model.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":       model.OrderStatusCompleted,
			"completed_at": now,
		}).Error
}

func (r *orderRepository) MarkCanceled(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND status = ?", id, model.OrderStatusPending).
		Update("status", model.OrderStatusCanceled).Error
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerUID string) ([]model.Order, error) {
	var list []model.Order
	if err := r.db.WithContext(ctx).
		Where("buyer_uid = ?", buyerUID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepository) SetDB(db *gorm.DB) {
	r.db = db
}
