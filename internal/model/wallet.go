package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Wallet struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement"`
	UserID    uint64          `gorm:"column:user_id;not null;uniqueIndex:uk_wallets_user"`
	Balance   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

func (Wallet) TableName() string {
	return "wallets"
}
