package service

import (
	"context"
	"errors"
	"strings"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/clutterhaven/marketplace-backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrDuplicateReview = errors.New("vendor already reviewed")
	ErrNotEligible     = errors.New("no delivered order with this vendor")
)

type ReviewService interface {
	Create(ctx context.Context, user *model.User, vendorID uint64, rating int, comment string) (*model.Review, error)
	ListByVendor(ctx context.Context, vendorID uint64) ([]model.Review, error)
	ListMine(ctx context.Context, user *model.User) ([]model.Review, error)
	Update(ctx context.Context, user *model.User, id uint64, rating *int, comment *string) (*model.Review, error)
	Delete(ctx context.Context, user *model.User, id uint64) error
}

type reviewService struct {
	reviews repository.ReviewRepository
	vendors repository.VendorRepository
}

func NewReviewService(reviews repository.ReviewRepository, vendors repository.VendorRepository) ReviewService {
	return &reviewService{reviews: reviews, vendors: vendors}
}

func (s *reviewService) Create(ctx context.Context, user *model.User, vendorID uint64, rating int, comment string) (*model.Review, error) {
	if user.Role != model.RoleBuyer {
		return nil, ErrForbidden
	}
	if rating < 1 || rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}
	if _, err := s.vendors.FindByID(ctx, vendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	eligible, err := s.reviews.HasDeliveredOrder(ctx, user.ID, vendorID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrNotEligible
	}

	if _, err := s.reviews.FindByBuyerAndVendor(ctx, user.ID, vendorID); err == nil {
		return nil, ErrDuplicateReview
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	rv := &model.Review{
		BuyerID:  user.ID,
		VendorID: vendorID,
		Rating:   rating,
		Comment:  strings.TrimSpace(comment),
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *reviewService) ListByVendor(ctx context.Context, vendorID uint64) ([]model.Review, error) {
	return s.reviews.ListByVendor(ctx, vendorID)
}

func (s *reviewService) ListMine(ctx context.Context, user *model.User) ([]model.Review, error) {
	return s.reviews.ListByBuyer(ctx, user.ID)
}

func (s *reviewService) Update(ctx context.Context, user *model.User, id uint64, rating *int, comment *string) (*model.Review, error) {
	rv, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rv.BuyerID != user.ID {
		return nil, ErrForbidden
	}
	if rating != nil {
		if *rating < 1 || *rating > 5 {
			return nil, errors.New("rating must be between 1 and 5")
		}
		rv.Rating = *rating
	}
	if comment != nil {
		rv.Comment = strings.TrimSpace(*comment)
	}
	if err := s.reviews.Update(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *reviewService) Delete(ctx context.Context, user *model.User, id uint64) error {
	rv, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if rv.BuyerID != user.ID && user.Role != model.RoleAdmin {
		return ErrForbidden
	}
	return s.reviews.Delete(ctx, id)
}
