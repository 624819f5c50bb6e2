package service

import (
	"context"
	"errors"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/clutterhaven/marketplace-backend/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type WalletService interface {
	Get(ctx context.Context, userID uint64) (*model.Wallet, error)
	Topup(ctx context.Context, userID uint64, amount decimal.Decimal) (*model.Wallet, error)
}

type walletService struct {
	wallets repository.WalletRepository
}

func NewWalletService(wallets repository.WalletRepository) WalletService {
	return &walletService{wallets: wallets}
}

func (s *walletService) Get(ctx context.Context, userID uint64) (*model.Wallet, error) {
	w, err := s.wallets.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (s *walletService) Topup(ctx context.Context, userID uint64, amount decimal.Decimal) (*model.Wallet, error) {
	if !amount.IsPositive() {
		return nil, errors.New("amount must be positive")
	}
	if err := s.wallets.Credit(ctx, userID, amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, userID)
}
