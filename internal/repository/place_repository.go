package repository

import (
	"context"

	"fitlink-backend/internal/model"
	"gorm.io/gorm"
)

type PlaceRepository interface {
	Create(ctx context.Context, p *model.Place) error
	FindByID(ctx context.Context, id uint64) (*model.Place, error)
	List(ctx context.Context, category string, limit int) ([]model.Place, error)
	SetDB(db *gorm.DB)
}

type placeRepository struct {
	db *gorm.DB
}

func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

func (r *placeRepository) Create(ctx context.Context, p *model.Place) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *placeRepository) FindByID(ctx context.Context, id uint64) (*model.Place, error) {
	var p model.Place
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *placeRepository) List(ctx context.Context, category string, limit int) ([]model.Place, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	q := r.db.WithContext(ctx).Model(&model.Place{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var list []model.Place
	if err := q.Order("name ASC").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *placeRepository) SetDB(db *gorm.DB) {
	r.db = db
}
