package repository

import (
	"context"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"gorm.io/gorm"
)

type VendorRepository interface {
	FindByID(ctx context.Context, id uint64) (*model.Vendor, error)
	FindByUser(ctx context.Context, userID uint64) (*model.Vendor, error)
	Update(ctx context.Context, v *model.Vendor) error
}

type vendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) FindByID(ctx context.Context, id uint64) (*model.Vendor, error) {
	var v model.Vendor
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vendorRepository) FindByUser(ctx context.Context, userID uint64) (*model.Vendor, error) {
	var v model.Vendor
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vendorRepository) Update(ctx context.Context, v *model.Vendor) error {
	return r.db.WithContext(ctx).Save(v).Error
}
