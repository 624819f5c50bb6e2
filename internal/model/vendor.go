package model

import "time"

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

type Vendor struct {
	ID                 uint64             `gorm:"primaryKey;autoIncrement"`
	UserID             uint64             `gorm:"column:user_id;not null;uniqueIndex:uk_vendors_user"`
	PlanID             uint64             `gorm:"column:plan_id;not null;index"`
	VerificationStatus VerificationStatus `gorm:"size:16;not null;default:pending"`
	IDVerified         bool               `gorm:"column:id_verified;not null;default:false"`
	LocationVerified   bool               `gorm:"not null;default:false"`
	CreatedAt          time.Time          `gorm:"autoCreateTime"`
	UpdatedAt          time.Time          `gorm:"autoUpdateTime"`
}

func (Vendor) TableName() string {
	return "vendors"
}
