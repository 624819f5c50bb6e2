package service

import (
	"context"
	"errors"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/clutterhaven/marketplace-backend/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrInvalidTransition   = errors.New("invalid order status transition")
)

var hundred = decimal.NewFromInt(100)

// sellerTransitions are the forward moves a seller may request through
// the generic status endpoint. delivered is reachable only via
// ConfirmDelivery; cancellation is handled by Cancel.
var sellerTransitions = map[model.OrderStatus]model.OrderStatus{
	model.OrderStatusPending:   model.OrderStatusConfirmed,
	model.OrderStatusConfirmed: model.OrderStatusShipped,
}

type OrderService interface {
	Create(ctx context.Context, user *model.User, listingID uint64) (*model.Order, error)
	ListPurchases(ctx context.Context, user *model.User) ([]model.Order, error)
	ListSales(ctx context.Context, user *model.User) ([]model.Order, error)
	UpdateStatus(ctx context.Context, user *model.User, orderID uint64, to model.OrderStatus) (*model.Order, error)
	ConfirmDelivery(ctx context.Context, user *model.User, orderID uint64) (*model.Order, error)
}

type orderService struct {
	orders   repository.OrderRepository
	listings repository.ListingRepository
	vendors  repository.VendorRepository
	plans    repository.VendorPlanRepository
}

func NewOrderService(orders repository.OrderRepository, listings repository.ListingRepository, vendors repository.VendorRepository, plans repository.VendorPlanRepository) OrderService {
	return &orderService{orders: orders, listings: listings, vendors: vendors, plans: plans}
}

func (s *orderService) Create(ctx context.Context, user *model.User, listingID uint64) (*model.Order, error) {
	if user.Role != model.RoleBuyer {
		return nil, ErrForbidden
	}
	listing, err := s.listings.FindActiveByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	vendor, err := s.vendors.FindByID(ctx, listing.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor.UserID == user.ID {
		return nil, errors.New("cannot order your own listing")
	}

	o := &model.Order{
		BuyerID:   user.ID,
		ListingID: listing.ID,
		Status:    model.OrderStatusPending,
	}
	if err := s.orders.PlaceOrder(ctx, o, listing.Price); err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return nil, ErrInsufficientBalance
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *orderService) ListPurchases(ctx context.Context, user *model.User) ([]model.Order, error) {
	return s.orders.ListByBuyer(ctx, user.ID)
}

func (s *orderService) ListSales(ctx context.Context, user *model.User) ([]model.Order, error) {
	if user.Role != model.RoleSeller {
		return nil, ErrForbidden
	}
	vendor, err := s.vendors.FindByUser(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.orders.ListByVendor(ctx, vendor.ID)
}

func (s *orderService) UpdateStatus(ctx context.Context, user *model.User, orderID uint64, to model.OrderStatus) (*model.Order, error) {
	o, listing, vendor, err := s.loadOrderParties(ctx, orderID)
	if err != nil {
		return nil, err
	}

	isBuyer := o.BuyerID == user.ID
	isSeller := vendor.UserID == user.ID
	if !isBuyer && !isSeller {
		return nil, ErrForbidden
	}

	if to == model.OrderStatusCancelled {
		if o.Status != model.OrderStatusPending && o.Status != model.OrderStatusConfirmed {
			return nil, ErrInvalidTransition
		}
		if err := s.orders.CancelWithRefund(ctx, o, listing.Price); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidTransition
			}
			return nil, err
		}
		return o, nil
	}

	// Forward moves are seller-side only.
	if !isSeller {
		return nil, ErrForbidden
	}
	next, ok := sellerTransitions[o.Status]
	if !ok || next != to {
		return nil, ErrInvalidTransition
	}
	affected, err := s.orders.UpdateStatus(ctx, o.ID, o.Status, to)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInvalidTransition
	}
	o.Status = to
	return o, nil
}

func (s *orderService) ConfirmDelivery(ctx context.Context, user *model.User, orderID uint64) (*model.Order, error) {
	o, listing, vendor, err := s.loadOrderParties(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != user.ID {
		return nil, ErrForbidden
	}
	if o.Status != model.OrderStatusShipped {
		return nil, ErrInvalidTransition
	}

	// The remittance rate is read from the vendor's current plan, not
	// the plan at order time.
	plan, err := s.plans.FindByID(ctx, vendor.PlanID)
	if err != nil {
		return nil, err
	}
	earnings := listing.Price.Mul(plan.RemittanceRate).Div(hundred).Round(2)

	if err := s.orders.ConfirmDelivery(ctx, o, vendor.UserID, earnings); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}
	return o, nil
}

func (s *orderService) loadOrderParties(ctx context.Context, orderID uint64) (*model.Order, *model.Listing, *model.Vendor, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrNotFound
		}
		return nil, nil, nil, err
	}
	listing, err := s.listings.FindByID(ctx, o.ListingID)
	if err != nil {
		return nil, nil, nil, err
	}
	vendor, err := s.vendors.FindByID(ctx, listing.VendorID)
	if err != nil {
		return nil, nil, nil, err
	}
	return o, listing, vendor, nil
}
