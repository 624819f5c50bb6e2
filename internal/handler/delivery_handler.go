package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/clutterhaven/marketplace-backend/internal/middleware"
	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/clutterhaven/marketplace-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type DeliveryHandler struct {
	svc service.DeliveryService
}

func NewDeliveryHandler(svc service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{svc: svc}
}

type DeliveryResponse struct {
	ID               uint64 `json:"id"`
	OrderID          uint64 `json:"orderId"`
	DispatchOption   string `json:"dispatchOption"`
	LogisticsPartner string `json:"logisticsPartner,omitempty"`
	DeliveryStatus   string `json:"deliveryStatus"`
	ConfirmedByBuyer bool   `json:"confirmedByBuyer"`
	CreatedAt        string `json:"createdAt"`
}

func toDeliveryResponse(d *model.DeliveryRequest) DeliveryResponse {
	return DeliveryResponse{
		ID:               d.ID,
		OrderID:          d.OrderID,
		DispatchOption:   string(d.DispatchOption),
		LogisticsPartner: d.LogisticsPartner,
		DeliveryStatus:   string(d.DeliveryStatus),
		ConfirmedByBuyer: d.ConfirmedByBuyer,
		CreatedAt:        d.CreatedAt.Format(time.RFC3339),
	}
}

func (h *DeliveryHandler) CreateForOrder(c echo.Context) error {
	user := middleware.CurrentUser(c)
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid order id"))
	}
	var body struct {
		DispatchOption   string `json:"dispatchOption"`
		LogisticsPartner string `json:"logisticsPartner"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	d, err := h.svc.CreateForOrder(c.Request().Context(), user, orderID, model.DispatchOption(body.DispatchOption), body.LogisticsPartner)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "order not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
		case service.ErrInvalidTransition:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_transition", "order is already closed"))
		default:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		}
	}
	return c.JSON(http.StatusCreated, toDeliveryResponse(d))
}

func (h *DeliveryHandler) UpdateStatus(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid delivery id"))
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	d, err := h.svc.UpdateStatus(c.Request().Context(), user, id, model.DeliveryStatus(body.Status))
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "delivery request not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
		case service.ErrInvalidTransition:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_transition", "status transition not allowed"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "status update failed"))
		}
	}
	return c.JSON(http.StatusOK, toDeliveryResponse(d))
}
