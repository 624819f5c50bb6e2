package repository

import (
	"context"
	"errors"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInsufficientBalance = errors.New("insufficient balance")

type WalletRepository interface {
	FindByUser(ctx context.Context, userID uint64) (*model.Wallet, error)
	Credit(ctx context.Context, userID uint64, amount decimal.Decimal) error
	Debit(ctx context.Context, userID uint64, amount decimal.Decimal) error
}

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) FindByUser(ctx context.Context, userID uint64) (*model.Wallet, error) {
	var w model.Wallet
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *walletRepository) Credit(ctx context.Context, userID uint64, amount decimal.Decimal) error {
	return creditWallet(r.db.WithContext(ctx), userID, amount)
}

func (r *walletRepository) Debit(ctx context.Context, userID uint64, amount decimal.Decimal) error {
	return debitWallet(r.db.WithContext(ctx), userID, amount)
}

func creditWallet(tx *gorm.DB, userID uint64, amount decimal.Decimal) error {
	res := tx.Model(&model.Wallet{}).
		Where("user_id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// debitWallet applies the balance check and the decrement in a single
// conditional UPDATE so that two concurrent debits against the same
// wallet cannot both pass a stale balance read. Zero rows affected
// means either no wallet or not enough balance; a count query tells
// the two apart.
func debitWallet(tx *gorm.DB, userID uint64, amount decimal.Decimal) error {
	res := tx.Model(&model.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := tx.Model(&model.Wallet{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrInsufficientBalance
	}
	return nil
}
