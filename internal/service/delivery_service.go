package service

import (
	"context"
	"errors"
	"strings"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/clutterhaven/marketplace-backend/internal/repository"
	"gorm.io/gorm"
)

var deliveryTransitions = map[model.DeliveryStatus]model.DeliveryStatus{
	model.DeliveryStatusPending:   model.DeliveryStatusInTransit,
	model.DeliveryStatusInTransit: model.DeliveryStatusDelivered,
}

type DeliveryService interface {
	CreateForOrder(ctx context.Context, user *model.User, orderID uint64, option model.DispatchOption, partner string) (*model.DeliveryRequest, error)
	UpdateStatus(ctx context.Context, user *model.User, id uint64, to model.DeliveryStatus) (*model.DeliveryRequest, error)
}

type deliveryService struct {
	deliveries repository.DeliveryRepository
	orders     repository.OrderRepository
	listings   repository.ListingRepository
	vendors    repository.VendorRepository
}

func NewDeliveryService(deliveries repository.DeliveryRepository, orders repository.OrderRepository, listings repository.ListingRepository, vendors repository.VendorRepository) DeliveryService {
	return &deliveryService{deliveries: deliveries, orders: orders, listings: listings, vendors: vendors}
}

func (s *deliveryService) CreateForOrder(ctx context.Context, user *model.User, orderID uint64, option model.DispatchOption, partner string) (*model.DeliveryRequest, error) {
	if option != model.DispatchPickup && option != model.DispatchDropOff {
		return nil, errors.New("invalid dispatch option")
	}
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.requireSellerOfOrder(ctx, user, o); err != nil {
		return nil, err
	}
	if o.Status == model.OrderStatusDelivered || o.Status == model.OrderStatusCancelled {
		return nil, ErrInvalidTransition
	}
	if _, err := s.deliveries.FindByOrder(ctx, orderID); err == nil {
		return nil, errors.New("delivery request already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	d := &model.DeliveryRequest{
		OrderID:          orderID,
		DispatchOption:   option,
		LogisticsPartner: strings.TrimSpace(partner),
		DeliveryStatus:   model.DeliveryStatusPending,
	}
	if err := s.deliveries.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *deliveryService) UpdateStatus(ctx context.Context, user *model.User, id uint64, to model.DeliveryStatus) (*model.DeliveryRequest, error) {
	d, err := s.deliveries.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	o, err := s.orders.FindByID(ctx, d.OrderID)
	if err != nil {
		return nil, err
	}
	if err := s.requireSellerOfOrder(ctx, user, o); err != nil {
		return nil, err
	}
	next, ok := deliveryTransitions[d.DeliveryStatus]
	if !ok || next != to {
		return nil, ErrInvalidTransition
	}
	affected, err := s.deliveries.UpdateStatus(ctx, d.ID, d.DeliveryStatus, to)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInvalidTransition
	}
	d.DeliveryStatus = to
	return d, nil
}

func (s *deliveryService) requireSellerOfOrder(ctx context.Context, user *model.User, o *model.Order) error {
	listing, err := s.listings.FindByID(ctx, o.ListingID)
	if err != nil {
		return err
	}
	vendor, err := s.vendors.FindByID(ctx, listing.VendorID)
	if err != nil {
		return err
	}
	if vendor.UserID != user.ID {
		return ErrForbidden
	}
	return nil
}
