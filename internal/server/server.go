package server

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clutterhaven/marketplace-backend/internal/config"
	"github.com/clutterhaven/marketplace-backend/internal/handler"
	appmw "github.com/clutterhaven/marketplace-backend/internal/middleware"
	"github.com/clutterhaven/marketplace-backend/internal/repository"
	"github.com/clutterhaven/marketplace-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo
}

func New(db *gorm.DB, cfg *config.Config, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(appmw.RequestLogger(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			return u.Scheme == "http" || u.Scheme == "https", nil
		},
	}))

	userRepo := repository.NewUserRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	planRepo := repository.NewVendorPlanRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	listingRepo := repository.NewListingRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	tokenTTL := time.Duration(cfg.TokenTTLHours) * time.Hour
	authSvc := service.NewAuthService(userRepo, planRepo, cfg.JWTSecret, tokenTTL, cfg.BcryptCost, cfg.DefaultPlanName)
	userSvc := service.NewUserService(userRepo)
	vendorSvc := service.NewVendorService(vendorRepo, planRepo)
	listingSvc := service.NewListingService(listingRepo, vendorRepo, planRepo)
	orderSvc := service.NewOrderService(orderRepo, listingRepo, vendorRepo, planRepo)
	walletSvc := service.NewWalletService(walletRepo)
	reviewSvc := service.NewReviewService(reviewRepo, vendorRepo)
	deliverySvc := service.NewDeliveryService(deliveryRepo, orderRepo, listingRepo, vendorRepo)

	authHandler := handler.NewAuthHandler(authSvc, logger)
	userHandler := handler.NewUserHandler(userSvc)
	vendorHandler := handler.NewVendorHandler(vendorSvc)
	listingHandler := handler.NewListingHandler(listingSvc)
	orderHandler := handler.NewOrderHandler(orderSvc, logger)
	walletHandler := handler.NewWalletHandler(walletSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	deliveryHandler := handler.NewDeliveryHandler(deliverySvc)

	authMw := appmw.NewAuthMiddleware(cfg.JWTSecret, userRepo)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	api := e.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/verify-email", authHandler.VerifyEmail)

	api.GET("/users/me", userHandler.Me, authMw.RequireAuth)
	api.PUT("/users/me", userHandler.UpdateMe, authMw.RequireAuth)

	api.GET("/vendors/plans", vendorHandler.ListPlans)
	api.GET("/vendors/me", vendorHandler.Me, authMw.RequireAuth)
	api.PUT("/vendors/verification", vendorHandler.UpdateVerification, authMw.RequireAuth)
	api.PUT("/vendors/plan", vendorHandler.ChangePlan, authMw.RequireAuth)

	api.POST("/listings", listingHandler.Create, authMw.RequireAuth)
	api.GET("/listings", listingHandler.List)
	api.GET("/listings/my-listings", listingHandler.ListMine, authMw.RequireAuth)
	api.GET("/listings/:id", listingHandler.Get)
	api.PUT("/listings/:id", listingHandler.Update, authMw.RequireAuth)
	api.PUT("/listings/:id/toggle", listingHandler.Toggle, authMw.RequireAuth)

	api.POST("/orders", orderHandler.Create, authMw.RequireAuth)
	api.GET("/orders/my-purchases", orderHandler.ListPurchases, authMw.RequireAuth)
	api.GET("/orders/my-sales", orderHandler.ListSales, authMw.RequireAuth)
	api.PUT("/orders/:id/status", orderHandler.UpdateStatus, authMw.RequireAuth)
	api.PUT("/orders/:id/confirm-delivery", orderHandler.ConfirmDelivery, authMw.RequireAuth)
	api.POST("/orders/:id/delivery", deliveryHandler.CreateForOrder, authMw.RequireAuth)
	api.PUT("/deliveries/:id/status", deliveryHandler.UpdateStatus, authMw.RequireAuth)

	api.GET("/wallets/me", walletHandler.Me, authMw.RequireAuth)
	api.POST("/wallets/topup", walletHandler.Topup, authMw.RequireAuth)

	api.POST("/reviews", reviewHandler.Create, authMw.RequireAuth)
	api.GET("/reviews/vendor/:id", reviewHandler.ListByVendor)
	api.GET("/reviews/my-reviews", reviewHandler.ListMine, authMw.RequireAuth)
	api.PUT("/reviews/:id", reviewHandler.Update, authMw.RequireAuth)
	api.DELETE("/reviews/:id", reviewHandler.Delete, authMw.RequireAuth)

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}
