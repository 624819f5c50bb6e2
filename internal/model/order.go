package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID          uint64      `gorm:"primaryKey;autoIncrement"`
	BuyerID     uint64      `gorm:"column:buyer_id;not null;index"`
	ListingID   uint64      `gorm:"column:listing_id;not null;index"`
	Status      OrderStatus `gorm:"size:16;not null;default:pending"`
	OrderedAt   time.Time   `gorm:"autoCreateTime"`
	DeliveredAt *time.Time  `gorm:"column:delivered_at"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}
