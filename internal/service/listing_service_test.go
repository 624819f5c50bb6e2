package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/clutterhaven/marketplace-backend/internal/repository"
	"github.com/shopspring/decimal"
)

func newListingFixture(maxPerMonth int) (ListingService, *fakeListingRepo, *model.User) {
	listings := newFakeListingRepo()
	vendors := newFakeVendorRepo()
	plans := newFakePlanRepo()

	plans.plans[1] = &model.VendorPlan{
		ID:                  1,
		Name:                "basic",
		RemittanceRate:      decimal.NewFromInt(85),
		MaxListingsPerMonth: maxPerMonth,
	}
	vendors.vendors[10] = &model.Vendor{ID: 10, UserID: 2, PlanID: 1}
	seller := &model.User{ID: 2, Role: model.RoleSeller}

	return NewListingService(listings, vendors, plans), listings, seller
}

func validInput() ListingInput {
	return ListingInput{
		Title:         "Road bike 54cm",
		Description:   "Serviced last spring.",
		Price:         decimal.RequireFromString("240.00"),
		ItemCondition: model.ConditionFair,
		Category:      "sports",
	}
}

func TestCreateListingValidation(t *testing.T) {
	svc, _, seller := newListingFixture(10)

	tests := []struct {
		name   string
		mutate func(*ListingInput)
	}{
		{"empty title", func(in *ListingInput) { in.Title = "  " }},
		{"zero price", func(in *ListingInput) { in.Price = decimal.Zero }},
		{"negative price", func(in *ListingInput) { in.Price = decimal.NewFromInt(-5) }},
		{"unknown condition", func(in *ListingInput) { in.ItemCondition = "mint" }},
		{"empty category", func(in *ListingInput) { in.Category = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			if _, err := svc.Create(context.Background(), seller, in); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateListingBuyerForbidden(t *testing.T) {
	svc, _, _ := newListingFixture(10)
	buyer := &model.User{ID: 1, Role: model.RoleBuyer}
	if _, err := svc.Create(context.Background(), buyer, validInput()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err=%v want ErrForbidden", err)
	}
}

func TestCreateListingMonthlyQuota(t *testing.T) {
	svc, listings, seller := newListingFixture(2)

	for i := 0; i < 2; i++ {
		if _, err := svc.Create(context.Background(), seller, validInput()); err != nil {
			t.Fatalf("listing %d: %v", i+1, err)
		}
	}
	if _, err := svc.Create(context.Background(), seller, validInput()); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("err=%v want ErrQuotaExceeded", err)
	}

	// Listings from a previous month do not count against the quota.
	for _, l := range listings.listings {
		l.CreatedAt = time.Now().AddDate(0, -1, 0)
	}
	if _, err := svc.Create(context.Background(), seller, validInput()); err != nil {
		t.Fatalf("after month rollover: %v", err)
	}
}

func TestCreateListingUnlimitedPlan(t *testing.T) {
	svc, _, seller := newListingFixture(model.UnlimitedListings)
	for i := 0; i < 25; i++ {
		if _, err := svc.Create(context.Background(), seller, validInput()); err != nil {
			t.Fatalf("listing %d: %v", i+1, err)
		}
	}
}

func TestGetExcludesInactive(t *testing.T) {
	svc, listings, seller := newListingFixture(10)
	l, err := svc.Create(context.Background(), seller, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	listings.listings[l.ID].IsActive = false

	if _, err := svc.Get(context.Background(), l.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
	got, _, err := svc.Search(context.Background(), repository.ListingFilter{Limit: 20})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("inactive listing surfaced in search: %d results", len(got))
	}
}

func TestUpdateWhitelistedFields(t *testing.T) {
	svc, _, seller := newListingFixture(10)
	l, err := svc.Create(context.Background(), seller, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "Road bike 56cm"
	price := decimal.RequireFromString("199.99")
	got, err := svc.Update(context.Background(), seller, l.ID, ListingUpdate{Title: &title, Price: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != title || got.Price.StringFixed(2) != "199.99" {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.Category != "sports" {
		t.Fatalf("untouched field changed: %s", got.Category)
	}

	bad := decimal.Zero
	if _, err := svc.Update(context.Background(), seller, l.ID, ListingUpdate{Price: &bad}); err == nil {
		t.Fatal("expected price validation error")
	}
}

func TestUpdateOtherVendorForbidden(t *testing.T) {
	svc, _, seller := newListingFixture(10)
	l, err := svc.Create(context.Background(), seller, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	other := &model.User{ID: 99, Role: model.RoleSeller}
	title := "hijacked"
	if _, err := svc.Update(context.Background(), other, l.ID, ListingUpdate{Title: &title}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err=%v want ErrForbidden", err)
	}
}

func TestToggleByOwnerAndAdmin(t *testing.T) {
	svc, _, seller := newListingFixture(10)
	l, err := svc.Create(context.Background(), seller, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Toggle(context.Background(), seller, l.ID)
	if err != nil {
		t.Fatalf("owner toggle: %v", err)
	}
	if got.IsActive {
		t.Fatal("expected inactive after toggle")
	}

	admin := &model.User{ID: 50, Role: model.RoleAdmin}
	got, err = svc.Toggle(context.Background(), admin, l.ID)
	if err != nil {
		t.Fatalf("admin toggle: %v", err)
	}
	if !got.IsActive {
		t.Fatal("expected active after admin toggle")
	}

	buyer := &model.User{ID: 1, Role: model.RoleBuyer}
	if _, err := svc.Toggle(context.Background(), buyer, l.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err=%v want ErrForbidden", err)
	}
}
