package repository

import (
	"context"

	"fitlink-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository interface {
	Create(ctx context.Context, e *model.Event) error
	FindByID(ctx context.Context, id uint64) (*model.Event, error)
	List(ctx context.Context, limit, offset int) ([]model.Event, int64, error)
	// Register returns already=true when the user was registered before.
	Register(ctx context.Context, eventID uint64, uid string) (already bool, err error)
	CountRegistrations(ctx context.Context, eventID uint64) (int64, error)
	SetDB(db *gorm.DB)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, e *model.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uint64) (*model.Event, error) {
	var e model.Event
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventRepository) List(ctx context.Context, limit, offset int) ([]model.Event, int64, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Event{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Event
	if err := r.db.WithContext(ctx).
		Order("starts_at ASC").
		Limit(limit).Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *eventRepository) Register(ctx context.Context, eventID uint64, uid string) (bool, error) {
	reg := model.EventRegistration{EventID: eventID, UserUID: uid}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&reg)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 0, nil
}

func (r *eventRepository) CountRegistrations(ctx context.Context, eventID uint64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.EventRegistration{}).
		Where("event_id = ?", eventID).
		Count(&cnt).Error
	return cnt, err
}

func (r *eventRepository) SetDB(db *gorm.DB) {
	r.db = db
}
