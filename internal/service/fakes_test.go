package service

import (
	"context"
	"time"

	"github.com/clutterhaven/marketplace-backend/internal/model"
	"github.com/clutterhaven/marketplace-backend/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory fakes over the repository interfaces. Each keeps the same
// guard semantics as the real implementation (conditional debits,
// status-guarded updates) so service tests exercise the full contract.

type fakeWalletRepo struct {
	wallets map[uint64]*model.Wallet
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{wallets: map[uint64]*model.Wallet{}}
}

func (f *fakeWalletRepo) put(userID uint64, balance string) {
	f.wallets[userID] = &model.Wallet{
		ID:      userID,
		UserID:  userID,
		Balance: decimal.RequireFromString(balance),
	}
}

func (f *fakeWalletRepo) FindByUser(_ context.Context, userID uint64) (*model.Wallet, error) {
	w, ok := f.wallets[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *w
	return &cp, nil
}

func (f *fakeWalletRepo) Credit(_ context.Context, userID uint64, amount decimal.Decimal) error {
	w, ok := f.wallets[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	w.Balance = w.Balance.Add(amount)
	return nil
}

func (f *fakeWalletRepo) Debit(_ context.Context, userID uint64, amount decimal.Decimal) error {
	w, ok := f.wallets[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if w.Balance.LessThan(amount) {
		return repository.ErrInsufficientBalance
	}
	w.Balance = w.Balance.Sub(amount)
	return nil
}

type fakeListingRepo struct {
	listings map[uint64]*model.Listing
	nextID   uint64
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: map[uint64]*model.Listing{}, nextID: 1}
}

func (f *fakeListingRepo) Create(_ context.Context, l *model.Listing) error {
	l.ID = f.nextID
	f.nextID++
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	cp := *l
	f.listings[l.ID] = &cp
	return nil
}

func (f *fakeListingRepo) FindByID(_ context.Context, id uint64) (*model.Listing, error) {
	l, ok := f.listings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeListingRepo) FindActiveByID(_ context.Context, id uint64) (*model.Listing, error) {
	l, ok := f.listings[id]
	if !ok || !l.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeListingRepo) SearchActive(_ context.Context, flt repository.ListingFilter) ([]model.Listing, int64, error) {
	var out []model.Listing
	for _, l := range f.listings {
		if !l.IsActive {
			continue
		}
		if flt.Category != "" && l.Category != flt.Category {
			continue
		}
		out = append(out, *l)
	}
	return out, int64(len(out)), nil
}

func (f *fakeListingRepo) ListByVendor(_ context.Context, vendorID uint64) ([]model.Listing, error) {
	var out []model.Listing
	for _, l := range f.listings {
		if l.VendorID == vendorID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeListingRepo) CountCreatedSince(_ context.Context, vendorID uint64, since time.Time) (int64, error) {
	var n int64
	for _, l := range f.listings {
		if l.VendorID == vendorID && !l.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeListingRepo) Update(_ context.Context, l *model.Listing) error {
	cp := *l
	f.listings[l.ID] = &cp
	return nil
}

type fakeVendorRepo struct {
	vendors map[uint64]*model.Vendor
}

func newFakeVendorRepo() *fakeVendorRepo {
	return &fakeVendorRepo{vendors: map[uint64]*model.Vendor{}}
}

func (f *fakeVendorRepo) FindByID(_ context.Context, id uint64) (*model.Vendor, error) {
	v, ok := f.vendors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVendorRepo) FindByUser(_ context.Context, userID uint64) (*model.Vendor, error) {
	for _, v := range f.vendors {
		if v.UserID == userID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVendorRepo) Update(_ context.Context, v *model.Vendor) error {
	cp := *v
	f.vendors[v.ID] = &cp
	return nil
}

type fakePlanRepo struct {
	plans map[uint64]*model.VendorPlan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: map[uint64]*model.VendorPlan{}}
}

func (f *fakePlanRepo) List(_ context.Context) ([]model.VendorPlan, error) {
	var out []model.VendorPlan
	for _, p := range f.plans {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePlanRepo) FindByID(_ context.Context, id uint64) (*model.VendorPlan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlanRepo) FindByName(_ context.Context, name string) (*model.VendorPlan, error) {
	for _, p := range f.plans {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePlanRepo) Ensure(_ context.Context, plan *model.VendorPlan) error {
	for _, p := range f.plans {
		if p.Name == plan.Name {
			*plan = *p
			return nil
		}
	}
	plan.ID = uint64(len(f.plans) + 1)
	cp := *plan
	f.plans[plan.ID] = &cp
	return nil
}

type fakeOrderRepo struct {
	orders     map[uint64]*model.Order
	payments   []model.Payment
	wallets    *fakeWalletRepo
	deliveries *fakeDeliveryRepo
	listings   *fakeListingRepo
	nextID     uint64
}

func newFakeOrderRepo(wallets *fakeWalletRepo, listings *fakeListingRepo) *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:   map[uint64]*model.Order{},
		wallets:  wallets,
		listings: listings,
		nextID:   1,
	}
}

func (f *fakeOrderRepo) PlaceOrder(ctx context.Context, o *model.Order, amount decimal.Decimal) error {
	if err := f.wallets.Debit(ctx, o.BuyerID, amount); err != nil {
		return err
	}
	o.ID = f.nextID
	f.nextID++
	o.OrderedAt = time.Now()
	cp := *o
	f.orders[o.ID] = &cp
	f.payments = append(f.payments, model.Payment{
		OrderID: o.ID,
		Amount:  amount,
		Method:  model.PaymentMethodWallet,
		Status:  model.PaymentStatusCompleted,
	})
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uint64) (*model.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) ListByBuyer(_ context.Context, buyerID uint64) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		if o.BuyerID == buyerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListByVendor(_ context.Context, vendorID uint64) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		l, ok := f.listings.listings[o.ListingID]
		if ok && l.VendorID == vendorID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id uint64, from, to model.OrderStatus) (int64, error) {
	o, ok := f.orders[id]
	if !ok || o.Status != from {
		return 0, nil
	}
	o.Status = to
	return 1, nil
}

func (f *fakeOrderRepo) CancelWithRefund(ctx context.Context, o *model.Order, refund decimal.Decimal) error {
	stored, ok := f.orders[o.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Status != model.OrderStatusPending && stored.Status != model.OrderStatusConfirmed {
		return gorm.ErrRecordNotFound
	}
	stored.Status = model.OrderStatusCancelled
	if err := f.wallets.Credit(ctx, stored.BuyerID, refund); err != nil {
		return err
	}
	o.Status = model.OrderStatusCancelled
	return nil
}

func (f *fakeOrderRepo) ConfirmDelivery(ctx context.Context, o *model.Order, sellerUserID uint64, earnings decimal.Decimal) error {
	stored, ok := f.orders[o.ID]
	if !ok || stored.Status != model.OrderStatusShipped {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	stored.Status = model.OrderStatusDelivered
	stored.DeliveredAt = &now
	if err := f.wallets.Credit(ctx, sellerUserID, earnings); err != nil {
		return err
	}
	if f.deliveries != nil {
		for _, d := range f.deliveries.requests {
			if d.OrderID == stored.ID {
				d.DeliveryStatus = model.DeliveryStatusDelivered
				d.ConfirmedByBuyer = true
			}
		}
	}
	o.Status = model.OrderStatusDelivered
	o.DeliveredAt = &now
	return nil
}

type fakeDeliveryRepo struct {
	requests map[uint64]*model.DeliveryRequest
	nextID   uint64
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{requests: map[uint64]*model.DeliveryRequest{}, nextID: 1}
}

func (f *fakeDeliveryRepo) Create(_ context.Context, d *model.DeliveryRequest) error {
	d.ID = f.nextID
	f.nextID++
	cp := *d
	f.requests[d.ID] = &cp
	return nil
}

func (f *fakeDeliveryRepo) FindByID(_ context.Context, id uint64) (*model.DeliveryRequest, error) {
	d, ok := f.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDeliveryRepo) FindByOrder(_ context.Context, orderID uint64) (*model.DeliveryRequest, error) {
	for _, d := range f.requests {
		if d.OrderID == orderID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDeliveryRepo) UpdateStatus(_ context.Context, id uint64, from, to model.DeliveryStatus) (int64, error) {
	d, ok := f.requests[id]
	if !ok || d.DeliveryStatus != from {
		return 0, nil
	}
	d.DeliveryStatus = to
	return 1, nil
}

type fakeReviewRepo struct {
	reviews   map[uint64]*model.Review
	delivered map[[2]uint64]bool // (buyerID, vendorID) -> has delivered order
	nextID    uint64
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{
		reviews:   map[uint64]*model.Review{},
		delivered: map[[2]uint64]bool{},
		nextID:    1,
	}
}

func (f *fakeReviewRepo) Create(_ context.Context, rv *model.Review) error {
	rv.ID = f.nextID
	f.nextID++
	cp := *rv
	f.reviews[rv.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) FindByID(_ context.Context, id uint64) (*model.Review, error) {
	rv, ok := f.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rv
	return &cp, nil
}

func (f *fakeReviewRepo) FindByBuyerAndVendor(_ context.Context, buyerID, vendorID uint64) (*model.Review, error) {
	for _, rv := range f.reviews {
		if rv.BuyerID == buyerID && rv.VendorID == vendorID {
			cp := *rv
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReviewRepo) ListByVendor(_ context.Context, vendorID uint64) ([]model.Review, error) {
	var out []model.Review
	for _, rv := range f.reviews {
		if rv.VendorID == vendorID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) ListByBuyer(_ context.Context, buyerID uint64) ([]model.Review, error) {
	var out []model.Review
	for _, rv := range f.reviews {
		if rv.BuyerID == buyerID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) Update(_ context.Context, rv *model.Review) error {
	cp := *rv
	f.reviews[rv.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uint64) error {
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) HasDeliveredOrder(_ context.Context, buyerID, vendorID uint64) (bool, error) {
	return f.delivered[[2]uint64{buyerID, vendorID}], nil
}

type fakeUserRepo struct {
	users  map[uint64]*model.User
	nextID uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint64]*model.User{}, nextID: 1}
}

func (f *fakeUserRepo) Register(_ context.Context, u *model.User, vendor *model.Vendor) error {
	u.ID = f.nextID
	f.nextID++
	cp := *u
	f.users[u.ID] = &cp
	if vendor != nil {
		vendor.UserID = u.ID
	}
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) MarkVerified(_ context.Context, token string) (int64, error) {
	for _, u := range f.users {
		if u.VerificationToken == token && !u.IsVerified {
			u.IsVerified = true
			u.VerificationToken = ""
			return 1, nil
		}
	}
	return 0, nil
}
