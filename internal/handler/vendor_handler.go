package handler

import (
	"net/http"
	"time"

	"github.com/clutterhaven/marketplace-backend/internal/middleware"
	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/clutterhaven/marketplace-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type VendorHandler struct {
	svc service.VendorService
}

func NewVendorHandler(svc service.VendorService) *VendorHandler {
	return &VendorHandler{svc: svc}
}

type VendorPlanResponse struct {
	ID                  uint64 `json:"id"`
	Name                string `json:"name"`
	MonthlyFee          string `json:"monthlyFee"`
	RemittanceRate      string `json:"remittanceRate"`
	MaxListingsPerMonth int    `json:"maxListingsPerMonth"`
	VisibilityBoost     bool   `json:"visibilityBoost"`
}

func toVendorPlanResponse(p *model.VendorPlan) VendorPlanResponse {
	return VendorPlanResponse{
		ID:                  p.ID,
		Name:                p.Name,
		MonthlyFee:          p.MonthlyFee.StringFixed(2),
		RemittanceRate:      p.RemittanceRate.StringFixed(2),
		MaxListingsPerMonth: p.MaxListingsPerMonth,
		VisibilityBoost:     p.VisibilityBoost,
	}
}

type VendorResponse struct {
	ID                 uint64 `json:"id"`
	UserID             uint64 `json:"userId"`
	PlanID             uint64 `json:"planId"`
	VerificationStatus string `json:"verificationStatus"`
	IDVerified         bool   `json:"idVerified"`
	LocationVerified   bool   `json:"locationVerified"`
	CreatedAt          string `json:"createdAt"`
}

func toVendorResponse(v *model.Vendor) VendorResponse {
	return VendorResponse{
		ID:                 v.ID,
		UserID:             v.UserID,
		PlanID:             v.PlanID,
		VerificationStatus: string(v.VerificationStatus),
		IDVerified:         v.IDVerified,
		LocationVerified:   v.LocationVerified,
		CreatedAt:          v.CreatedAt.Format(time.RFC3339),
	}
}

func (h *VendorHandler) ListPlans(c echo.Context) error {
	plans, err := h.svc.Plans(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch plans"))
	}
	resp := make([]VendorPlanResponse, 0, len(plans))
	for i := range plans {
		resp = append(resp, toVendorPlanResponse(&plans[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *VendorHandler) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)
	v, err := h.svc.Profile(c.Request().Context(), user)
	if err != nil {
		switch err {
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "sellers only"))
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "vendor profile not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch vendor"))
		}
	}
	return c.JSON(http.StatusOK, toVendorResponse(v))
}

func (h *VendorHandler) UpdateVerification(c echo.Context) error {
	user := middleware.CurrentUser(c)
	var body struct {
		IDVerified       bool `json:"idVerified"`
		LocationVerified bool `json:"locationVerified"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	v, err := h.svc.UpdateVerification(c.Request().Context(), user, body.IDVerified, body.LocationVerified)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "vendor profile not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "update failed"))
		}
	}
	return c.JSON(http.StatusOK, toVendorResponse(v))
}

func (h *VendorHandler) ChangePlan(c echo.Context) error {
	user := middleware.CurrentUser(c)
	var body struct {
		PlanID uint64 `json:"planId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	v, err := h.svc.ChangePlan(c.Request().Context(), user, body.PlanID)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "vendor or plan not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "plan change failed"))
		}
	}
	return c.JSON(http.StatusOK, toVendorResponse(v))
}
