package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/clutterhaven/marketplace-backend/internal/middleware"
	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/clutterhaven/marketplace-backend/internal/service"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type OrderHandler struct {
	svc    service.OrderService
	logger *zap.Logger
}

func NewOrderHandler(svc service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, logger: logger}
}

type OrderResponse struct {
	ID          uint64  `json:"id"`
	BuyerID     uint64  `json:"buyerId"`
	ListingID   uint64  `json:"listingId"`
	Status      string  `json:"status"`
	OrderedAt   string  `json:"orderedAt"`
	DeliveredAt *string `json:"deliveredAt,omitempty"`
}

func toOrderResponse(o *model.Order) OrderResponse {
	var deliveredAt *string
	if o.DeliveredAt != nil {
		val := o.DeliveredAt.Format(time.RFC3339)
		deliveredAt = &val
	}
	return OrderResponse{
		ID:          o.ID,
		BuyerID:     o.BuyerID,
		ListingID:   o.ListingID,
		Status:      string(o.Status),
		OrderedAt:   o.OrderedAt.Format(time.RFC3339),
		DeliveredAt: deliveredAt,
	}
}

func (h *OrderHandler) Create(c echo.Context) error {
	user := middleware.CurrentUser(c)
	var body struct {
		ListingID uint64 `json:"listingId"`
	}
	if err := c.Bind(&body); err != nil || body.ListingID == 0 {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid listing id"))
	}
	o, err := h.svc.Create(c.Request().Context(), user, body.ListingID)
	if err != nil {
		switch err {
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "only buyers can create orders"))
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "listing not found or inactive"))
		case service.ErrInsufficientBalance:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("insufficient_balance", "insufficient wallet balance"))
		default:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		}
	}
	h.logger.Info("order placed",
		zap.Uint64("order_id", o.ID),
		zap.Uint64("buyer_id", o.BuyerID),
		zap.Uint64("listing_id", o.ListingID))
	return c.JSON(http.StatusCreated, toOrderResponse(o))
}

func (h *OrderHandler) ListPurchases(c echo.Context) error {
	user := middleware.CurrentUser(c)
	orders, err := h.svc.ListPurchases(c.Request().Context(), user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch purchases"))
	}
	return c.JSON(http.StatusOK, toOrderResponses(orders))
}

func (h *OrderHandler) ListSales(c echo.Context) error {
	user := middleware.CurrentUser(c)
	orders, err := h.svc.ListSales(c.Request().Context(), user)
	if err != nil {
		switch err {
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "sellers only"))
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "vendor profile not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch sales"))
		}
	}
	return c.JSON(http.StatusOK, toOrderResponses(orders))
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	user := middleware.CurrentUser(c)
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid order id"))
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	o, err := h.svc.UpdateStatus(c.Request().Context(), user, orderID, model.OrderStatus(body.Status))
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "order not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
		case service.ErrInvalidTransition:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_transition", "status transition not allowed"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "status update failed"))
		}
	}
	h.logger.Info("order status updated",
		zap.Uint64("order_id", o.ID),
		zap.String("status", string(o.Status)))
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

func (h *OrderHandler) ConfirmDelivery(c echo.Context) error {
	user := middleware.CurrentUser(c)
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid order id"))
	}
	o, err := h.svc.ConfirmDelivery(c.Request().Context(), user, orderID)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "order not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
		case service.ErrInvalidTransition:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_transition", "order must be shipped before confirmation"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "confirmation failed"))
		}
	}
	h.logger.Info("delivery confirmed", zap.Uint64("order_id", o.ID))
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

func toOrderResponses(orders []model.Order) []OrderResponse {
	resp := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	return resp
}
