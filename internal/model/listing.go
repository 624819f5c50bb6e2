package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemCondition string

const (
	ConditionNew       ItemCondition = "new"
	ConditionLikeNew   ItemCondition = "like_new"
	ConditionGood      ItemCondition = "good"
	ConditionFair      ItemCondition = "fair"
	ConditionForRepair ItemCondition = "for_repair"
)

func ValidCondition(c ItemCondition) bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionForRepair:
		return true
	}
	return false
}

type Listing struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement"`
	VendorID      uint64          `gorm:"column:vendor_id;not null;index"`
	Title         string          `gorm:"size:120;not null"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ItemCondition ItemCondition   `gorm:"size:16;not null"`
	Category      string          `gorm:"size:64;not null;index"`
	ImageURL      *string         `gorm:"size:512"`
	IsActive      bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time       `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
}

func (Listing) TableName() string {
	return "listings"
}
