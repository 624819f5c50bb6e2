package repository

import (
	"context"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"gorm.io/gorm"
)

type DeliveryRepository interface {
	Create(ctx context.Context, d *model.DeliveryRequest) error
	FindByID(ctx context.Context, id uint64) (*model.DeliveryRequest, error)
	FindByOrder(ctx context.Context, orderID uint64) (*model.DeliveryRequest, error)
	UpdateStatus(ctx context.Context, id uint64, from, to model.DeliveryStatus) (int64, error)
}

type deliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) Create(ctx context.Context, d *model.DeliveryRequest) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *deliveryRepository) FindByID(ctx context.Context, id uint64) (*model.DeliveryRequest, error) {
	var d model.DeliveryRequest
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *deliveryRepository) FindByOrder(ctx context.Context, orderID uint64) (*model.DeliveryRequest, error) {
	var d model.DeliveryRequest
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *deliveryRepository) UpdateStatus(ctx context.Context, id uint64, from, to model.DeliveryStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.DeliveryRequest{}).
		Where("id = ? AND delivery_status = ?", id, from).
		Update("delivery_status", to)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
