package repository

import (
	"context"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *model.Review) error
	FindByID(ctx context.Context, id uint64) (*model.Review, error)
	FindByBuyerAndVendor(ctx context.Context, buyerID, vendorID uint64) (*model.Review, error)
	ListByVendor(ctx context.Context, vendorID uint64) ([]model.Review, error)
	ListByBuyer(ctx context.Context, buyerID uint64) ([]model.Review, error)
	Update(ctx context.Context, rv *model.Review) error
	Delete(ctx context.Context, id uint64) error
	// HasDeliveredOrder reports whether the buyer has at least one
	// delivered order against one of the vendor's listings.
	HasDeliveredOrder(ctx context.Context, buyerID, vendorID uint64) (bool, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *model.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint64) (*model.Review, error) {
	var rv model.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepository) FindByBuyerAndVendor(ctx context.Context, buyerID, vendorID uint64) (*model.Review, error) {
	var rv model.Review
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ? AND vendor_id = ?", buyerID, vendorID).
		First(&rv).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepository) ListByVendor(ctx context.Context, vendorID uint64) ([]model.Review, error) {
	var list []model.Review
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *reviewRepository) ListByBuyer(ctx context.Context, buyerID uint64) ([]model.Review, error) {
	var list []model.Review
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *reviewRepository) Update(ctx context.Context, rv *model.Review) error {
	return r.db.WithContext(ctx).Save(rv).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Review{}, id).Error
}

func (r *reviewRepository) HasDeliveredOrder(ctx context.Context, buyerID, vendorID uint64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Joins("JOIN listings ON listings.id = orders.listing_id").
		Where("orders.buyer_id = ? AND listings.vendor_id = ? AND orders.status = ?",
			buyerID, vendorID, model.OrderStatusDelivered).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
