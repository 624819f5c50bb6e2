package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnlimitedListings is the quota sentinel for plans without a monthly cap.
const UnlimitedListings = -1

type VendorPlan struct {
	ID                  uint64          `gorm:"primaryKey;autoIncrement"`
	Name                string          `gorm:"size:64;not null;uniqueIndex:uk_vendor_plans_name"`
	MonthlyFee          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	RemittanceRate      decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	MaxListingsPerMonth int             `gorm:"not null"`
	VisibilityBoost     bool            `gorm:"not null;default:false"`
	CreatedAt           time.Time       `gorm:"autoCreateTime"`
	UpdatedAt           time.Time       `gorm:"autoUpdateTime"`
}

func (VendorPlan) TableName() string {
	return "vendor_plans"
}
