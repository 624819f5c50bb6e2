package repository

import (
	"context"
	"time"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"gorm.io/gorm"
)

type ListingFilter struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

type ListingRepository interface {
	Create(ctx context.Context, l *model.Listing) error
	FindByID(ctx context.Context, id uint64) (*model.Listing, error)
	FindActiveByID(ctx context.Context, id uint64) (*model.Listing, error)
	SearchActive(ctx context.Context, f ListingFilter) ([]model.Listing, int64, error)
	ListByVendor(ctx context.Context, vendorID uint64) ([]model.Listing, error)
	CountCreatedSince(ctx context.Context, vendorID uint64, since time.Time) (int64, error)
	Update(ctx context.Context, l *model.Listing) error
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, l *model.Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *listingRepository) FindByID(ctx context.Context, id uint64) (*model.Listing, error) {
	var l model.Listing
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *listingRepository) FindActiveByID(ctx context.Context, id uint64) (*model.Listing, error) {
	var l model.Listing
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *listingRepository) SearchActive(ctx context.Context, f ListingFilter) ([]model.Listing, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Listing{}).Where("is_active = ?", true)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		q = q.Where("title LIKE ?", "%"+f.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []model.Listing
	if err := q.Order("created_at desc").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&listings).Error; err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *listingRepository) ListByVendor(ctx context.Context, vendorID uint64) ([]model.Listing, error) {
	var listings []model.Listing
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at desc").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) CountCreatedSince(ctx context.Context, vendorID uint64, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Listing{}).
		Where("vendor_id = ? AND created_at >= ?", vendorID, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *listingRepository) Update(ctx context.Context, l *model.Listing) error {
	return r.db.WithContext(ctx).Save(l).Error
}
