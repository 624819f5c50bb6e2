package model

import "time"

type Review struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	BuyerID   uint64    `gorm:"column:buyer_id;not null;uniqueIndex:uk_reviews_buyer_vendor"`
	VendorID  uint64    `gorm:"column:vendor_id;not null;uniqueIndex:uk_reviews_buyer_vendor;index"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Review) TableName() string {
	return "reviews"
}
