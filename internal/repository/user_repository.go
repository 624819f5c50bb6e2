package repository

import (
	"context"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	// Register creates the user, their wallet and, for sellers, the
	// vendor profile in one transaction.
	Register(ctx context.Context, u *model.User, vendor *model.Vendor) error
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, u *model.User) error
	MarkVerified(ctx context.Context, token string) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Register(ctx context.Context, u *model.User, vendor *model.Vendor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		if err := tx.Create(&model.Wallet{UserID: u.ID}).Error; err != nil {
			return err
		}
		if vendor != nil {
			vendor.UserID = u.ID
			if err := tx.Create(vendor).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *userRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepository) MarkVerified(ctx context.Context, token string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("verification_token = ? AND is_verified = ?", token, false).
		Updates(map[string]interface{}{
			"is_verified":        true,
			"verification_token": "",
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
