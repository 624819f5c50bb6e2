package repository

import (
	"context"
	"time"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository interface {
	// PlaceOrder debits the buyer's wallet by the listing price and
	// inserts the order and its payment record. The three writes commit
	// or roll back together; a failed balance guard leaves no state
	// behind and surfaces ErrInsufficientBalance.
	PlaceOrder(ctx context.Context, o *model.Order, amount decimal.Decimal) error
	FindByID(ctx context.Context, id uint64) (*model.Order, error)
	ListByBuyer(ctx context.Context, buyerID uint64) ([]model.Order, error)
	ListByVendor(ctx context.Context, vendorID uint64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id uint64, from, to model.OrderStatus) (int64, error)
	// CancelWithRefund moves the order to cancelled and returns the
	// escrowed amount to the buyer's wallet atomically. The status guard
	// keeps a concurrent ship/cancel pair from both succeeding.
	CancelWithRefund(ctx context.Context, o *model.Order, refund decimal.Decimal) error
	// ConfirmDelivery marks a shipped order delivered and credits the
	// seller's wallet with their remittance in one transaction.
	ConfirmDelivery(ctx context.Context, o *model.Order, sellerUserID uint64, earnings decimal.Decimal) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) PlaceOrder(ctx context.Context, o *model.Order, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := debitWallet(tx, o.BuyerID, amount); err != nil {
			return err
		}
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		payment := &model.Payment{
			OrderID: o.ID,
			Amount:  amount,
			Method:  model.PaymentMethodWallet,
			Status:  model.PaymentStatusCompleted,
		}
		return tx.Create(payment).Error
	})
}

func (r *orderRepository) FindByID(ctx context.Context, id uint64) (*model.Order, error) {
	var o model.Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID uint64) ([]model.Order, error) {
	var list []model.Order
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepository) ListByVendor(ctx context.Context, vendorID uint64) ([]model.Order, error) {
	var list []model.Order
	if err := r.db.WithContext(ctx).
		Joins("JOIN listings ON listings.id = orders.listing_id").
		Where("listings.vendor_id = ?", vendorID).
		Order("orders.id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uint64, from, to model.OrderStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *orderRepository) CancelWithRefund(ctx context.Context, o *model.Order, refund decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Order{}).
			Where("id = ? AND status IN ?", o.ID, []model.OrderStatus{model.OrderStatusPending, model.OrderStatusConfirmed}).
			Update("status", model.OrderStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := creditWallet(tx, o.BuyerID, refund); err != nil {
			return err
		}
		o.Status = model.OrderStatusCancelled
		return nil
	})
}

func (r *orderRepository) ConfirmDelivery(ctx context.Context, o *model.Order, sellerUserID uint64, earnings decimal.Decimal) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Order{}).
			Where("id = ? AND status = ?", o.ID, model.OrderStatusShipped).
			Updates(map[string]interface{}{
				"status":       model.OrderStatusDelivered,
				"delivered_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := creditWallet(tx, sellerUserID, earnings); err != nil {
			return err
		}
		if err := tx.Model(&model.DeliveryRequest{}).
			Where("order_id = ?", o.ID).
			Updates(map[string]interface{}{
				"delivery_status":    model.DeliveryStatusDelivered,
				"confirmed_by_buyer": true,
			}).Error; err != nil {
			return err
		}
		o.Status = model.OrderStatusDelivered
		o.DeliveredAt = &now
		return nil
	})
}
