package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/clutterhaven/marketplace-backend/internal/repository"
	"github.com/clutterhaven/marketplace-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type stubListingService struct {
	searchFn func(ctx context.Context, f repository.ListingFilter) ([]model.Listing, int64, error)
}

func (s *stubListingService) Create(context.Context, *model.User, service.ListingInput) (*model.Listing, error) {
	return nil, nil
}

func (s *stubListingService) Get(context.Context, uint64) (*model.Listing, error) {
	return nil, nil
}

func (s *stubListingService) Search(ctx context.Context, f repository.ListingFilter) ([]model.Listing, int64, error) {
	return s.searchFn(ctx, f)
}

func (s *stubListingService) ListMine(context.Context, *model.User) ([]model.Listing, error) {
	return nil, nil
}

func (s *stubListingService) Update(context.Context, *model.User, uint64, service.ListingUpdate) (*model.Listing, error) {
	return nil, nil
}

func (s *stubListingService) Toggle(context.Context, *model.User, uint64) (*model.Listing, error) {
	return nil, nil
}

func listGet(t *testing.T, h *ListingHandler, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec
}

func TestListingsList(t *testing.T) {
	svc := &stubListingService{
		searchFn: func(_ context.Context, f repository.ListingFilter) ([]model.Listing, int64, error) {
			if f.Category != "furniture" || f.Limit != 5 || f.Offset != 10 {
				t.Fatalf("filter=%+v", f)
			}
			return []model.Listing{{
				ID:            1,
				VendorID:      10,
				Title:         "Vintage oak bookshelf",
				Price:         decimal.RequireFromString("60.00"),
				ItemCondition: model.ConditionGood,
				Category:      "furniture",
				IsActive:      true,
			}}, 1, nil
		},
	}
	h := NewListingHandler(svc)

	rec := listGet(t, h, "/api/listings?category=furniture&limit=5&offset=10")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var body struct {
		Items []ListingResponse `json:"items"`
		Total int64             `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 1 || len(body.Items) != 1 || body.Items[0].Price != "60.00" {
		t.Fatalf("body=%+v", body)
	}
}

func TestListingsListRejectsBadPagination(t *testing.T) {
	called := false
	svc := &stubListingService{
		searchFn: func(context.Context, repository.ListingFilter) ([]model.Listing, int64, error) {
			called = true
			return nil, 0, nil
		},
	}
	h := NewListingHandler(svc)

	for _, target := range []string{
		"/api/listings?limit=abc",
		"/api/listings?limit=-1",
		"/api/listings?offset=abc",
		"/api/listings?offset=-5",
	} {
		rec := listGet(t, h, target)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status=%d want 400", target, rec.Code)
		}
	}
	if called {
		t.Fatal("search must not run on malformed pagination")
	}
}
