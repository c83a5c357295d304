package service

import (
	"context"
	"errors"

	"fitlink-backend/internal/model"
	"fitlink-backend/internal/repository"
	"gorm.io/gorm"
)

type PlaceService interface {
	Create(ctx context.Context, uid, name, category, address string, lat, lng float64) (*model.Place, error)
	Get(ctx context.Context, id uint64) (*model.Place, error)
	List(ctx context.Context, category string, limit int) ([]model.Place, error)
}

type placeService struct {
	repo repository.PlaceRepository
}

func NewPlaceService(repo repository.PlaceRepository) PlaceService {
	return &placeService{repo: repo}
}

func (s *placeService) Create(ctx context.Context, uid, name, category, address string, lat, lng float64) (*model.Place, error) {
	if uid == "" {
		return nil, ErrNotAuthenticated
	}
	if name == "" {
		return nil, errors.New("name is required")
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, errors.New("invalid coordinates")
	}
	p := &model.Place{
		Name:         name,
		Category:     category,
		Address:      address,
		Lat:          lat,
		Lng:          lng,
		CreatedByUID: uid,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *placeService) Get(ctx context.Context, id uint64) (*model.Place, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *placeService) List(ctx context.Context, category string, limit int) ([]model.Place, error) {
	return s.repo.List(ctx, category, limit)
}
