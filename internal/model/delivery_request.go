package model

import "time"

type DispatchOption string

const (
	DispatchPickup  DispatchOption = "pickup"
	DispatchDropOff DispatchOption = "drop-off"
)

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusInTransit DeliveryStatus = "in_transit"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
)

type DeliveryRequest struct {
	ID               uint64         `gorm:"primaryKey;autoIncrement"`
	OrderID          uint64         `gorm:"column:order_id;not null;uniqueIndex:uk_delivery_requests_order"`
	DispatchOption   DispatchOption `gorm:"size:16;not null"`
	LogisticsPartner string         `gorm:"size:120"`
	DeliveryStatus   DeliveryStatus `gorm:"size:16;not null;default:pending"`
	ConfirmedByBuyer bool           `gorm:"not null;default:false"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
}

func (DeliveryRequest) TableName() string {
	return "delivery_requests"
}
