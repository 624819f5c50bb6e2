package repository

import (
	"context"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"gorm.io/gorm"
)

type VendorPlanRepository interface {
	List(ctx context.Context) ([]model.VendorPlan, error)
	FindByID(ctx context.Context, id uint64) (*model.VendorPlan, error)
	FindByName(ctx context.Context, name string) (*model.VendorPlan, error)
	Ensure(ctx context.Context, plan *model.VendorPlan) error
}

type vendorPlanRepository struct {
	db *gorm.DB
}

func NewVendorPlanRepository(db *gorm.DB) VendorPlanRepository {
	return &vendorPlanRepository{db: db}
}

func (r *vendorPlanRepository) List(ctx context.Context) ([]model.VendorPlan, error) {
	var plans []model.VendorPlan
	if err := r.db.WithContext(ctx).Order("monthly_fee asc").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *vendorPlanRepository) FindByID(ctx context.Context, id uint64) (*model.VendorPlan, error) {
	var p model.VendorPlan
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *vendorPlanRepository) FindByName(ctx context.Context, name string) (*model.VendorPlan, error) {
	var p model.VendorPlan
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Ensure inserts the plan if no plan with its name exists yet. Used by
// the seeder so repeated runs stay idempotent.
func (r *vendorPlanRepository) Ensure(ctx context.Context, plan *model.VendorPlan) error {
	return r.db.WithContext(ctx).
		Where("name = ?", plan.Name).
		FirstOrCreate(plan).Error
}
