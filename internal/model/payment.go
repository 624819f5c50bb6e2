package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodWallet PaymentMethod = "wallet"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment is an audit record written alongside an order. Rows are
// never updated after insert.
type Payment struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement"`
	OrderID   uint64          `gorm:"column:order_id;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Method    PaymentMethod   `gorm:"column:payment_method;size:16;not null"`
	Status    PaymentStatus   `gorm:"size:16;not null;default:pending"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (Payment) TableName() string {
	return "payments"
}
