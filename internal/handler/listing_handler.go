package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/clutterhaven/marketplace-backend/internal/middleware"
	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/clutterhaven/marketplace-backend/internal/repository"
	"github.com/clutterhaven/marketplace-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ListingHandler struct {
	svc service.ListingService
}

func NewListingHandler(svc service.ListingService) *ListingHandler {
	return &ListingHandler{svc: svc}
}

type ListingResponse struct {
	ID            uint64  `json:"id"`
	VendorID      uint64  `json:"vendorId"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         string  `json:"price"`
	ItemCondition string  `json:"itemCondition"`
	Category      string  `json:"category"`
	ImageURL      *string `json:"imageUrl,omitempty"`
	IsActive      bool    `json:"isActive"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

func toListingResponse(l *model.Listing) ListingResponse {
	return ListingResponse{
		ID:            l.ID,
		VendorID:      l.VendorID,
		Title:         l.Title,
		Description:   l.Description,
		Price:         l.Price.StringFixed(2),
		ItemCondition: string(l.ItemCondition),
		Category:      l.Category,
		ImageURL:      l.ImageURL,
		IsActive:      l.IsActive,
		CreatedAt:     l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     l.UpdatedAt.Format(time.RFC3339),
	}
}

type listingBody struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Price         *string `json:"price"`
	ItemCondition *string `json:"itemCondition"`
	Category      *string `json:"category"`
	ImageURL      *string `json:"imageUrl"`
}

func (h *ListingHandler) Create(c echo.Context) error {
	user := middleware.CurrentUser(c)
	var body listingBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	in := service.ListingInput{}
	if body.Title != nil {
		in.Title = *body.Title
	}
	if body.Description != nil {
		in.Description = *body.Description
	}
	if body.Price != nil {
		p, err := decimal.NewFromString(*body.Price)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid price"))
		}
		in.Price = p
	}
	if body.ItemCondition != nil {
		in.ItemCondition = model.ItemCondition(*body.ItemCondition)
	}
	if body.Category != nil {
		in.Category = *body.Category
	}
	in.ImageURL = body.ImageURL

	l, err := h.svc.Create(c.Request().Context(), user, in)
	if err != nil {
		switch err {
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "only sellers can create listings"))
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "vendor profile not found"))
		case service.ErrQuotaExceeded:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("quota_exceeded", "monthly listing limit reached"))
		default:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		}
	}
	return c.JSON(http.StatusCreated, toListingResponse(l))
}

func (h *ListingHandler) List(c echo.Context) error {
	var limit, offset int
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid limit"))
		}
		limit = n
	}
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid offset"))
		}
		offset = n
	}
	listings, total, err := h.svc.Search(c.Request().Context(), repository.ListingFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch listings"))
	}
	items := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		items = append(items, toListingResponse(&listings[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": items,
		"total": total,
	})
}

func (h *ListingHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid listing id"))
	}
	l, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "listing not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch listing"))
		}
	}
	return c.JSON(http.StatusOK, toListingResponse(l))
}

func (h *ListingHandler) ListMine(c echo.Context) error {
	user := middleware.CurrentUser(c)
	listings, err := h.svc.ListMine(c.Request().Context(), user)
	if err != nil {
		switch err {
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "sellers only"))
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "vendor profile not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch listings"))
		}
	}
	resp := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		resp = append(resp, toListingResponse(&listings[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ListingHandler) Update(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid listing id"))
	}
	var body listingBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	upd := service.ListingUpdate{
		Title:       body.Title,
		Description: body.Description,
		Category:    body.Category,
		ImageURL:    body.ImageURL,
	}
	if body.Price != nil {
		p, err := decimal.NewFromString(*body.Price)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid price"))
		}
		upd.Price = &p
	}
	if body.ItemCondition != nil {
		cond := model.ItemCondition(*body.ItemCondition)
		upd.ItemCondition = &cond
	}

	l, err := h.svc.Update(c.Request().Context(), user, id, upd)
	if err != nil {
		switch err {
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "listing not found"))
		default:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		}
	}
	return c.JSON(http.StatusOK, toListingResponse(l))
}

func (h *ListingHandler) Toggle(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid listing id"))
	}
	l, err := h.svc.Toggle(c.Request().Context(), user, id)
	if err != nil {
		switch err {
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "listing not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "toggle failed"))
		}
	}
	return c.JSON(http.StatusOK, toListingResponse(l))
}
