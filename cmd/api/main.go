package main

import (
	"log"

	"github.com/clutterhaven/marketplace-backend/internal/config"
	"github.com/clutterhaven/marketplace-backend/internal/db"
	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/clutterhaven/marketplace-backend/internal/server"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load", zap.Error(err))
	}

	conn, err := db.Connect(cfg, logger)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}

	if err := conn.AutoMigrate(
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
		logger.Fatal("auto migrate", zap.Error(err))
	}

	srv := server.New(conn, cfg, logger)

	addr := ":" + cfg.Port
	logger.Info("starting server", zap.String("addr", addr))
	if err := srv.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
