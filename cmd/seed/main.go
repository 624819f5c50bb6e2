package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/clutterhaven/marketplace-backend/internal/config"
	"github.com/clutterhaven/marketplace-backend/internal/db"
	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/clutterhaven/marketplace-backend/internal/repository"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	zlog, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer zlog.Sync()

	gdb, err := db.Connect(cfg, zlog)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}

	if err := gdb.AutoMigrate(
		&model.User{},
		&model.Wallet{},
		&model.VendorPlan{},
		&model.Vendor{},
		&model.Listing{},
		&model.Order{},
		&model.Payment{},
		&model.DeliveryRequest{},
		&model.Review{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := seedPlans(ctx, gdb); err != nil {
		return err
	}
	if err := seedDemoAccounts(ctx, gdb, cfg); err != nil {
		return err
	}

	log.Printf("seed complete")
	return nil
}

func seedPlans(ctx context.Context, gdb *gorm.DB) error {
	plans := repository.NewVendorPlanRepository(gdb)

	basic := &model.VendorPlan{
		Name:                "basic",
		MonthlyFee:          decimal.Zero,
		RemittanceRate:      decimal.NewFromInt(85),
		MaxListingsPerMonth: 10,
	}
	premium := &model.VendorPlan{
		Name:                "premium",
		MonthlyFee:          decimal.RequireFromString("29.99"),
		RemittanceRate:      decimal.NewFromInt(92),
		MaxListingsPerMonth: 100,
		VisibilityBoost:     true,
	}

	for _, p := range []*model.VendorPlan{basic, premium} {
		if err := plans.Ensure(ctx, p); err != nil {
			return fmt.Errorf("ensure plan %s: %w", p.Name, err)
		}
		log.Printf("plan %q id=%d remittance=%s", p.Name, p.ID, p.RemittanceRate)
	}
	return nil
}

func seedDemoAccounts(ctx context.Context, gdb *gorm.DB, cfg *config.Config) error {
	users := repository.NewUserRepository(gdb)
	plans := repository.NewVendorPlanRepository(gdb)
	wallets := repository.NewWalletRepository(gdb)

	if _, err := users.FindByEmail(ctx, "buyer@example.com"); err == nil {
		log.Printf("demo accounts already exist; skipping")
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), cfg.BcryptCost)
	if err != nil {
		return err
	}

	buyer := &model.User{
		FullName:     "Demo Buyer",
		Email:        "buyer@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleBuyer,
		IsVerified:   true,
	}
	if err := users.Register(ctx, buyer, nil); err != nil {
		return fmt.Errorf("create demo buyer: %w", err)
	}
	if err := wallets.Credit(ctx, buyer.ID, decimal.NewFromInt(500)); err != nil {
		return fmt.Errorf("fund demo buyer: %w", err)
	}

	basic, err := plans.FindByName(ctx, cfg.DefaultPlanName)
	if err != nil {
		return fmt.Errorf("find default plan: %w", err)
	}
	seller := &model.User{
		FullName:     "Demo Seller",
		Email:        "seller@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleSeller,
		IsVerified:   true,
	}
	vendor := &model.Vendor{
		PlanID:             basic.ID,
		VerificationStatus: model.VerificationVerified,
		IDVerified:         true,
		LocationVerified:   true,
	}
	if err := users.Register(ctx, seller, vendor); err != nil {
		return fmt.Errorf("create demo seller: %w", err)
	}

	listings := repository.NewListingRepository(gdb)
	samples := []model.Listing{
		{Title: "Vintage oak bookshelf", Category: "furniture", ItemCondition: model.ConditionGood, Price: decimal.RequireFromString("60.00"), Description: "Solid oak, minor scratches on the top shelf."},
		{Title: "Acoustic guitar", Category: "music", ItemCondition: model.ConditionLikeNew, Price: decimal.RequireFromString("120.00"), Description: "Barely played, comes with a soft case."},
		{Title: "Road bike 54cm", Category: "sports", ItemCondition: model.ConditionFair, Price: decimal.RequireFromString("240.00"), Description: "Serviced last spring, new chain."},
	}
	for i := range samples {
		samples[i].VendorID = vendor.ID
		samples[i].IsActive = true
		if err := listings.Create(ctx, &samples[i]); err != nil {
			return fmt.Errorf("create sample listing: %w", err)
		}
	}

	log.Printf("demo accounts ready: buyer@example.com / seller@example.com (password %q)", "demo-password")
	return nil
}
