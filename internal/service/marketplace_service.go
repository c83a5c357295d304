package service

import (
	"context"
	"errors"

	"fitlink-backend/internal/model"
	"fitlink-backend/internal/repository"
	"gorm.io/gorm"
)

var ErrAlreadyOrdered = errors.New("already_ordered")

type MarketplaceService interface {
	CreateListing(ctx context.Context, sellerUID, title, description string, price uint, imageURL *string) (*model.Listing, error)
	GetListing(ctx context.Context, id uint64) (*model.Listing, error)
	ListListings(ctx context.Context, limit, offset int) ([]model.Listing, int64, error)
	ListMine(ctx context.Context, sellerUID string) ([]model.Listing, error)
	PlaceOrder(ctx context.Context, listingID uint64, buyerUID string) (*model.Order, error)
	CompleteOrder(ctx context.Context, orderID uint64, buyerUID string) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID uint64, buyerUID string) error
	ListOrders(ctx context.Context, buyerUID string) ([]model.Order, error)
}

type marketplaceService struct {
	listingRepo repository.ListingRepository
	orderRepo   repository.OrderRepository
	xpSvc       XPService
	notifier    Notifier
}

func NewMarketplaceService(listingRepo repository.ListingRepository, orderRepo repository.OrderRepository, xpSvc XPService, notifier Notifier) MarketplaceService {
	return &marketplaceService{listingRepo: listingRepo, orderRepo: orderRepo, xpSvc: xpSvc, notifier: notifier}
}

func (s *marketplaceService) CreateListing(ctx context.Context, sellerUID, title, description string, price uint, imageURL *string) (*model.Listing, error) {
	if sellerUID == "" {
		return nil, ErrNotAuthenticated
	}
	if title == "" || description == "" {
		return nil, errors.New("title and description are required")
	}
	l := &model.Listing{
		SellerUID:   sellerUID,
		Title:       title,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		Status:      model.ListingStatusActive,
	}
	if err := s.listingRepo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *marketplaceService) GetListing(ctx context.Context, id uint64) (*model.Listing, error) {
	l, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *marketplaceService) ListListings(ctx context.Context, limit, offset int) ([]model.Listing, int64, error) {
	return s.listingRepo.List(ctx, limit, offset)
}

func (s *marketplaceService) ListMine(ctx context.Context, sellerUID string) ([]model.Listing, error) {
	if sellerUID == "" {
		return nil, ErrNotAuthenticated
	}
	return s.listingRepo.ListBySeller(ctx, sellerUID)
}

func (s *marketplaceService) PlaceOrder(ctx context.Context, listingID uint64, buyerUID string) (*model.Order, error) {
	if buyerUID == "" {
		return nil, ErrNotAuthenticated
	}
	l, err := s.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l.SellerUID == buyerUID {
		return nil, errors.New("cannot buy your own listing")
	}
	if l.Status != model.ListingStatusActive {
		return nil, ErrNotFound
	}
	if existing, err := s.orderRepo.FindByListing(ctx, listingID); err == nil && existing != nil {
		if existing.Status != model.OrderStatusCanceled {
			return existing, ErrAlreadyOrdered
		}
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	o := &model.Order{
		ListingID:  listingID,
		BuyerUID:   buyerUID,
		SellerUID:  l.SellerUID,
		Status:     model.OrderStatusPending,
		PaidAmount: l.Price,
	}
	if err := s.orderRepo.Create(ctx, o); err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, l.SellerUID, model.NotificationTypeOrder,
		"Nuevo pedido", "Tu artículo "+l.Title+" tiene un comprador", 3000)
	return o, nil
}

func (s *marketplaceService) CompleteOrder(ctx context.Context, orderID uint64, buyerUID string) (*model.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if o.BuyerUID != buyerUID {
		return nil, ErrForbidden
	}
	if o.Status != model.OrderStatusPending {
		return o, nil
	}
	if err := s.orderRepo.MarkCompleted(ctx, o.ID); err != nil {
		return nil, err
	}
	if err := s.listingRepo.UpdateStatus(ctx, o.ListingID, model.ListingStatusSold); err != nil {
		return nil, err
	}
	o.Status = model.OrderStatusCompleted

	if _, err := s.xpSvc.AddXP(ctx, buyerUID, 100, "Compra completada"); err != nil {
		return o, err
	}
	return o, nil
}

func (s *marketplaceService) CancelOrder(ctx context.Context, orderID uint64, buyerUID string) error {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if o.BuyerUID != buyerUID {
		return ErrForbidden
	}
	return s.orderRepo.MarkCanceled(ctx, o.ID)
}

func (s *marketplaceService) ListOrders(ctx context.Context, buyerUID string) ([]model.Order, error) {
	if buyerUID == "" {
		return nil, ErrNotAuthenticated
	}
	return s.orderRepo.ListByBuyer(ctx, buyerUID)
}
