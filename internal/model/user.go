package model

import "time"

type UserRole string

const (
	RoleBuyer  UserRole = "buyer"
	RoleSeller UserRole = "seller"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	ID                uint64    `gorm:"primaryKey;autoIncrement"`
	FullName          string    `gorm:"size:120;not null"`
	Email             string    `gorm:"size:255;not null;uniqueIndex:uk_users_email"`
	Phone             string    `gorm:"size:32"`
	PasswordHash      string    `gorm:"size:255;not null"`
	Role              UserRole  `gorm:"column:role;size:16;not null"`
	IsVerified        bool      `gorm:"not null;default:false"`
	VerificationToken string    `gorm:"size:64;index"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
