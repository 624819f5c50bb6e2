package service

import (
	"context"
	"errors"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/clutterhaven/marketplace-backend/internal/repository"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")
var ErrForbidden = errors.New("forbidden")

type VendorService interface {
	Plans(ctx context.Context) ([]model.VendorPlan, error)
	Profile(ctx context.Context, user *model.User) (*model.Vendor, error)
	UpdateVerification(ctx context.Context, user *model.User, idVerified, locationVerified bool) (*model.Vendor, error)
	ChangePlan(ctx context.Context, user *model.User, planID uint64) (*model.Vendor, error)
}

type vendorService struct {
	vendors repository.VendorRepository
	plans   repository.VendorPlanRepository
}

func NewVendorService(vendors repository.VendorRepository, plans repository.VendorPlanRepository) VendorService {
	return &vendorService{vendors: vendors, plans: plans}
}

func (s *vendorService) Plans(ctx context.Context) ([]model.VendorPlan, error) {
	return s.plans.List(ctx)
}

func (s *vendorService) Profile(ctx context.Context, user *model.User) (*model.Vendor, error) {
	if user.Role != model.RoleSeller {
		return nil, ErrForbidden
	}
	return s.findVendor(ctx, user.ID)
}

func (s *vendorService) UpdateVerification(ctx context.Context, user *model.User, idVerified, locationVerified bool) (*model.Vendor, error) {
	v, err := s.findVendor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	v.IDVerified = idVerified
	v.LocationVerified = locationVerified
	if idVerified && locationVerified {
		v.VerificationStatus = model.VerificationVerified
	} else {
		v.VerificationStatus = model.VerificationPending
	}
	if err := s.vendors.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *vendorService) ChangePlan(ctx context.Context, user *model.User, planID uint64) (*model.Vendor, error) {
	v, err := s.findVendor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.plans.FindByID(ctx, planID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	v.PlanID = planID
	if err := s.vendors.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *vendorService) findVendor(ctx context.Context, userID uint64) (*model.Vendor, error) {
	v, err := s.vendors.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}
