package handler

import (
	"net/http"
	"time"

	"github.com/clutterhaven/marketplace-backend/internal/middleware"
	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/clutterhaven/marketplace-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type WalletHandler struct {
	svc service.WalletService
}

func NewWalletHandler(svc service.WalletService) *WalletHandler {
	return &WalletHandler{svc: svc}
}

type WalletResponse struct {
	ID        uint64 `json:"id"`
	UserID    uint64 `json:"userId"`
	Balance   string `json:"balance"`
	UpdatedAt string `json:"updatedAt"`
}

func toWalletResponse(w *model.Wallet) WalletResponse {
	return WalletResponse{
		ID:        w.ID,
		UserID:    w.UserID,
		Balance:   w.Balance.StringFixed(2),
		UpdatedAt: w.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *WalletHandler) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)
	w, err := h.svc.Get(c.Request().Context(), user.ID)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "wallet not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch wallet"))
		}
	}
	return c.JSON(http.StatusOK, toWalletResponse(w))
}

func (h *WalletHandler) Topup(c echo.Context) error {
	user := middleware.CurrentUser(c)
	var body struct {
		Amount string `json:"amount"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	amount, err := decimal.NewFromString(body.Amount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid amount"))
	}
	w, err := h.svc.Topup(c.Request().Context(), user.ID, amount)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "wallet not found"))
		default:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		}
	}
	return c.JSON(http.StatusOK, toWalletResponse(w))
}
