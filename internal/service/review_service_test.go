package service

import (
	"context"
	"errors"
	"testing"

	"github.com/clutterhaven/marketplace-backend/internal/model"
)

func newReviewFixture() (ReviewService, *fakeReviewRepo) {
	reviews := newFakeReviewRepo()
	vendors := newFakeVendorRepo()
	vendors.vendors[10] = &model.Vendor{ID: 10, UserID: 2}
	return NewReviewService(reviews, vendors), reviews
}

func TestCreateReviewRequiresDeliveredOrder(t *testing.T) {
	svc, reviews := newReviewFixture()
	buyer := &model.User{ID: 1, Role: model.RoleBuyer}

	if _, err := svc.Create(context.Background(), buyer, 10, 5, "great"); !errors.Is(err, ErrNotEligible) {
		t.Fatalf("err=%v want ErrNotEligible", err)
	}

	reviews.delivered[[2]uint64{1, 10}] = true
	rv, err := svc.Create(context.Background(), buyer, 10, 5, "  great seller  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rv.Comment != "great seller" {
		t.Fatalf("comment=%q", rv.Comment)
	}
}

func TestCreateReviewDuplicate(t *testing.T) {
	svc, reviews := newReviewFixture()
	buyer := &model.User{ID: 1, Role: model.RoleBuyer}
	reviews.delivered[[2]uint64{1, 10}] = true

	if _, err := svc.Create(context.Background(), buyer, 10, 4, "good"); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := svc.Create(context.Background(), buyer, 10, 2, "changed my mind"); !errors.Is(err, ErrDuplicateReview) {
		t.Fatalf("err=%v want ErrDuplicateReview", err)
	}
}

func TestCreateReviewRatingRange(t *testing.T) {
	svc, reviews := newReviewFixture()
	buyer := &model.User{ID: 1, Role: model.RoleBuyer}
	reviews.delivered[[2]uint64{1, 10}] = true

	for _, rating := range []int{0, 6, -1} {
		if _, err := svc.Create(context.Background(), buyer, 10, rating, ""); err == nil {
			t.Fatalf("rating %d accepted", rating)
		}
	}
}

func TestCreateReviewSellerForbidden(t *testing.T) {
	svc, _ := newReviewFixture()
	seller := &model.User{ID: 2, Role: model.RoleSeller}
	if _, err := svc.Create(context.Background(), seller, 10, 5, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err=%v want ErrForbidden", err)
	}
}

func TestCreateReviewUnknownVendor(t *testing.T) {
	svc, _ := newReviewFixture()
	buyer := &model.User{ID: 1, Role: model.RoleBuyer}
	if _, err := svc.Create(context.Background(), buyer, 999, 5, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}

func TestUpdateReviewAuthorOnly(t *testing.T) {
	svc, reviews := newReviewFixture()
	buyer := &model.User{ID: 1, Role: model.RoleBuyer}
	reviews.delivered[[2]uint64{1, 10}] = true
	rv, err := svc.Create(context.Background(), buyer, 10, 4, "good")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rating := 2
	got, err := svc.Update(context.Background(), buyer, rv.ID, &rating, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Rating != 2 || got.Comment != "good" {
		t.Fatalf("got %+v", got)
	}

	other := &model.User{ID: 7, Role: model.RoleBuyer}
	if _, err := svc.Update(context.Background(), other, rv.ID, &rating, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err=%v want ErrForbidden", err)
	}
	admin := &model.User{ID: 50, Role: model.RoleAdmin}
	if _, err := svc.Update(context.Background(), admin, rv.ID, &rating, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("admin update err=%v want ErrForbidden", err)
	}
}

func TestDeleteReviewAuthorOrAdmin(t *testing.T) {
	svc, reviews := newReviewFixture()
	buyer := &model.User{ID: 1, Role: model.RoleBuyer}
	reviews.delivered[[2]uint64{1, 10}] = true
	rv, err := svc.Create(context.Background(), buyer, 10, 4, "good")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	other := &model.User{ID: 7, Role: model.RoleBuyer}
	if err := svc.Delete(context.Background(), other, rv.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err=%v want ErrForbidden", err)
	}

	admin := &model.User{ID: 50, Role: model.RoleAdmin}
	if err := svc.Delete(context.Background(), admin, rv.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := svc.Delete(context.Background(), buyer, rv.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}
