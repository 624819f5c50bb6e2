package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/clutterhaven/marketplace-backend/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrQuotaExceeded = errors.New("monthly listing limit reached")

type ListingInput struct {
	Title         string
	Description   string
	Price         decimal.Decimal
	ItemCondition model.ItemCondition
	Category      string
	ImageURL      *string
}

// ListingUpdate carries the whitelisted updatable fields; nil means
// leave the field unchanged.
type ListingUpdate struct {
	Title         *string
	Description   *string
	Price         *decimal.Decimal
	ItemCondition *model.ItemCondition
	Category      *string
	ImageURL      *string
}

type ListingService interface {
	Create(ctx context.Context, user *model.User, in ListingInput) (*model.Listing, error)
	Get(ctx context.Context, id uint64) (*model.Listing, error)
	Search(ctx context.Context, f repository.ListingFilter) ([]model.Listing, int64, error)
	ListMine(ctx context.Context, user *model.User) ([]model.Listing, error)
	Update(ctx context.Context, user *model.User, id uint64, upd ListingUpdate) (*model.Listing, error)
	Toggle(ctx context.Context, user *model.User, id uint64) (*model.Listing, error)
}

type listingService struct {
	listings repository.ListingRepository
	vendors  repository.VendorRepository
	plans    repository.VendorPlanRepository
}

func NewListingService(listings repository.ListingRepository, vendors repository.VendorRepository, plans repository.VendorPlanRepository) ListingService {
	return &listingService{listings: listings, vendors: vendors, plans: plans}
}

func (s *listingService) Create(ctx context.Context, user *model.User, in ListingInput) (*model.Listing, error) {
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

	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	if in.Title == "" || len(in.Title) > 120 {
		return nil, errors.New("invalid title")
	}
	if !in.Price.IsPositive() {
		return nil, errors.New("price must be positive")
	}
	if !model.ValidCondition(in.ItemCondition) {
		return nil, errors.New("invalid item condition")
	}
	if in.Category == "" {
		return nil, errors.New("category is required")
	}

	plan, err := s.plans.FindByID(ctx, vendor.PlanID)
	if err != nil {
		return nil, err
	}
	if plan.MaxListingsPerMonth != model.UnlimitedListings {
		now := time.Now()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		count, err := s.listings.CountCreatedSince(ctx, vendor.ID, monthStart)
		if err != nil {
			return nil, err
		}
		if count >= int64(plan.MaxListingsPerMonth) {
			return nil, ErrQuotaExceeded
		}
	}

	l := &model.Listing{
		VendorID:      vendor.ID,
		Title:         in.Title,
		Description:   strings.TrimSpace(in.Description),
		Price:         in.Price,
		ItemCondition: in.ItemCondition,
		Category:      in.Category,
		ImageURL:      in.ImageURL,
		IsActive:      true,
	}
	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *listingService) Get(ctx context.Context, id uint64) (*model.Listing, error) {
	l, err := s.listings.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *listingService) Search(ctx context.Context, f repository.ListingFilter) ([]model.Listing, int64, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	f.Category = strings.TrimSpace(f.Category)
	f.Search = strings.TrimSpace(f.Search)
	return s.listings.SearchActive(ctx, f)
}

func (s *listingService) ListMine(ctx context.Context, user *model.User) ([]model.Listing, error) {
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
	return s.listings.ListByVendor(ctx, vendor.ID)
}

func (s *listingService) Update(ctx context.Context, user *model.User, id uint64, upd ListingUpdate) (*model.Listing, error) {
	l, err := s.ownListing(ctx, user, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		t := strings.TrimSpace(*upd.Title)
		if t == "" || len(t) > 120 {
			return nil, errors.New("invalid title")
		}
		l.Title = t
	}
	if upd.Description != nil {
		l.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Price != nil {
		if !upd.Price.IsPositive() {
			return nil, errors.New("price must be positive")
		}
		l.Price = *upd.Price
	}
	if upd.ItemCondition != nil {
		if !model.ValidCondition(*upd.ItemCondition) {
			return nil, errors.New("invalid item condition")
		}
		l.ItemCondition = *upd.ItemCondition
	}
	if upd.Category != nil {
		c := strings.TrimSpace(*upd.Category)
		if c == "" {
			return nil, errors.New("category is required")
		}
		l.Category = c
	}
	if upd.ImageURL != nil {
		l.ImageURL = upd.ImageURL
	}

	if err := s.listings.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *listingService) Toggle(ctx context.Context, user *model.User, id uint64) (*model.Listing, error) {
	var l *model.Listing
	var err error
	if user.Role == model.RoleAdmin {
		l, err = s.listings.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	} else {
		l, err = s.ownListing(ctx, user, id)
		if err != nil {
			return nil, err
		}
	}
	l.IsActive = !l.IsActive
	if err := s.listings.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *listingService) ownListing(ctx context.Context, user *model.User, id uint64) (*model.Listing, error) {
	if user.Role != model.RoleSeller {
		return nil, ErrForbidden
	}
	vendor, err := s.vendors.FindByUser(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	l, err := s.listings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if l.VendorID != vendor.ID {
		return nil, ErrForbidden
	}
	return l, nil
}
