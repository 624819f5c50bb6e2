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

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

type ReviewResponse struct {
	ID        uint64 `json:"id"`
	BuyerID   uint64 `json:"buyerId"`
	VendorID  uint64 `json:"vendorId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func toReviewResponse(rv *model.Review) ReviewResponse {
	return ReviewResponse{
		ID:        rv.ID,
		BuyerID:   rv.BuyerID,
		VendorID:  rv.VendorID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt.Format(time.RFC3339),
	}
}

func (h *ReviewHandler) Create(c echo.Context) error {
	user := middleware.CurrentUser(c)
	var body struct {
		VendorID uint64 `json:"vendorId"`
		Rating   int    `json:"rating"`
		Comment  string `json:"comment"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	rv, err := h.svc.Create(c.Request().Context(), user, body.VendorID, body.Rating, body.Comment)
	if err != nil {
		switch err {
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "only buyers can leave reviews"))
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "vendor not found"))
		case service.ErrNotEligible:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("not_eligible", "you can only review vendors you have purchased from"))
		case service.ErrDuplicateReview:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("duplicate_review", "you have already reviewed this vendor"))
		default:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		}
	}
	return c.JSON(http.StatusCreated, toReviewResponse(rv))
}

func (h *ReviewHandler) ListByVendor(c echo.Context) error {
	vendorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid vendor id"))
	}
	reviews, err := h.svc.ListByVendor(c.Request().Context(), vendorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch reviews"))
	}
	return c.JSON(http.StatusOK, toReviewResponses(reviews))
}

func (h *ReviewHandler) ListMine(c echo.Context) error {
	user := middleware.CurrentUser(c)
	reviews, err := h.svc.ListMine(c.Request().Context(), user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch reviews"))
	}
	return c.JSON(http.StatusOK, toReviewResponses(reviews))
}

func (h *ReviewHandler) Update(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid review id"))
	}
	var body struct {
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	rv, err := h.svc.Update(c.Request().Context(), user, id, body.Rating, body.Comment)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "review not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
		default:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		}
	}
	return c.JSON(http.StatusOK, toReviewResponse(rv))
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid review id"))
	}
	if err := h.svc.Delete(c.Request().Context(), user, id); err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "review not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "delete failed"))
		}
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "review deleted"})
}

func toReviewResponses(reviews []model.Review) []ReviewResponse {
	resp := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, toReviewResponse(&reviews[i]))
	}
	return resp
}
