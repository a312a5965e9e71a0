package services_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/yashrajoria/shop-backend/apperrors"
	"github.com/yashrajoria/shop-backend/models"
	"github.com/yashrajoria/shop-backend/repository"
)

var errBoom = errors.New("connection reset")

// --- catalog ---

type fakeCatalog struct {
	products []models.Product
	err      error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: []models.Product{
		{ID: 1, Title: "Backpack", Price: models.MustParsePrice("109,95 PLN"), Category: models.CategoryMen},
		{ID: 2, Title: "T-Shirt", Price: models.MustParsePrice("22,30 PLN"), Category: models.CategoryMen},
		{ID: 3, Title: "Gold Ring", Price: models.MustParsePrice("2230,99 PLN"), Category: models.CategoryJewelery},
		{ID: 4, Title: "SSD", Price: models.MustParsePrice("70,99 PLN"), Category: models.CategoryElectronics},
		{ID: 5, Title: "Rain Jacket", Price: models.MustParsePrice("39,99 PLN"), Category: models.CategoryWomen},
	}}
}

func (f *fakeCatalog) Products(_ context.Context, category string) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Product
	for _, p := range f.products {
		if category == "" || category == models.CategoryAll || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) Product(_ context.Context, id int) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, apperrors.Wrap(apperrors.ErrNotFound, fmt.Errorf("product %d", id))
}

func (f *fakeCatalog) Categories(context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return models.CategoryIDs(), nil
}

// --- favourites ---

type fakeFavourites struct {
	byUser map[string][]int
	err    error
}

func newFakeFavourites() *fakeFavourites {
	return &fakeFavourites{byUser: map[string][]int{}}
}

func (f *fakeFavourites) List(_ context.Context, userID string) ([]models.FavouriteRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.FavouriteRecord{}
	for _, id := range f.byUser[userID] {
		out = append(out, models.FavouriteRecord{ID: fmt.Sprint(id), UserID: userID, ProductID: id})
	}
	return out, nil
}

func (f *fakeFavourites) Add(_ context.Context, userID string, productID int) (*models.FavouriteRecord, error) {
	for _, id := range f.byUser[userID] {
		if id == productID {
			return &models.FavouriteRecord{UserID: userID, ProductID: productID}, nil
		}
	}
	f.byUser[userID] = append(f.byUser[userID], productID)
	return &models.FavouriteRecord{ID: uuid.NewString(), UserID: userID, ProductID: productID}, nil
}

func (f *fakeFavourites) Remove(_ context.Context, userID string, productID int) error {
	ids := f.byUser[userID]
	for i, id := range ids {
		if id == productID {
			f.byUser[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

// --- cart ---

type fakeCarts struct {
	mu      sync.Mutex
	lines   map[string]map[int]int
	changes chan struct{}
	err     error
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{lines: map[string]map[int]int{}, changes: make(chan struct{}, 8)}
}

func (f *fakeCarts) List(_ context.Context, userID string) ([]models.CartRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []models.CartRecord{}
	for pid, qty := range f.lines[userID] {
		out = append(out, models.CartRecord{ID: fmt.Sprint(pid), UserID: userID, ProductID: pid, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (f *fakeCarts) set(userID string, productID, qty int) *models.CartRecord {
	if f.lines[userID] == nil {
		f.lines[userID] = map[int]int{}
	}
	f.lines[userID][productID] = qty
	return &models.CartRecord{UserID: userID, ProductID: productID, Quantity: qty}
}

func (f *fakeCarts) Add(_ context.Context, userID string, productID, quantity int) (*models.CartRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.set(userID, productID, f.lines[userID][productID]+quantity), nil
}

func (f *fakeCarts) SetQuantity(_ context.Context, userID string, productID, quantity int) (*models.CartRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lines[userID][productID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	return f.set(userID, productID, quantity), nil
}

func (f *fakeCarts) Remove(_ context.Context, userID string, productID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lines[userID][productID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.lines[userID], productID)
	return nil
}

func (f *fakeCarts) Clear(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.lines, userID)
	return nil
}

func (f *fakeCarts) Changes(context.Context, string) (<-chan struct{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.changes, nil
}

// --- orders ---

type fakeOrders struct {
	records []models.OrderRecord
	err     error
}

func (f *fakeOrders) Create(_ context.Context, o *models.OrderRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *o)
	return nil
}

func (f *fakeOrders) FindByUser(_ context.Context, userID string) ([]models.OrderRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.OrderRecord
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

// --- coupons ---

type fakeCoupons struct {
	byUser  map[string]models.Coupon
	saveErr error
	// beforeActivate runs between the service's check and the write, standing
	// in for a concurrent request.
	beforeActivate func()
}

func newFakeCoupons() *fakeCoupons {
	return &fakeCoupons{byUser: map[string]models.Coupon{}}
}

func (f *fakeCoupons) Find(_ context.Context, userID string) (*models.Coupon, error) {
	c, ok := f.byUser[userID]
	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, errors.New("no coupon"))
	}
	return &c, nil
}

func (f *fakeCoupons) Activate(_ context.Context, c *models.Coupon, expiredBy time.Time) error {
	if f.beforeActivate != nil {
		f.beforeActivate()
	}
	if f.saveErr != nil {
		return f.saveErr
	}
	if held, ok := f.byUser[c.UserID]; ok && held.ActivatedAt.After(expiredBy) {
		return apperrors.Wrap(apperrors.ErrConflict, errors.New("active coupon"))
	}
	f.byUser[c.UserID] = *c
	return nil
}

func (f *fakeCoupons) Delete(_ context.Context, userID string) error {
	if _, ok := f.byUser[userID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.byUser, userID)
	return nil
}

// --- users ---

type fakeUsers struct {
	profiles map[string]models.UserProfile
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{profiles: map[string]models.UserProfile{}}
}

func (f *fakeUsers) FindByID(_ context.Context, userID string) (*models.UserProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, errors.New("no user"))
	}
	return &p, nil
}

func (f *fakeUsers) Upsert(_ context.Context, p *models.UserProfile) error {
	points := f.profiles[p.UserID].Points
	p.UpdatedAt = time.Now()
	stored := *p
	stored.Points = points
	f.profiles[p.UserID] = stored
	return nil
}

func (f *fakeUsers) AddPoints(_ context.Context, userID string, delta int) (int, error) {
	p := f.profiles[userID]
	if p.Points+delta < 0 {
		return 0, repository.ErrInsufficientPoints
	}
	p.UserID = userID
	p.Points += delta
	f.profiles[userID] = p
	return p.Points, nil
}

// --- accounts & tokens ---

type fakeAccounts struct {
	byEmail map[string]models.Account
	revoked map[string]time.Time
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byEmail: map[string]models.Account{}, revoked: map[string]time.Time{}}
}

func (f *fakeAccounts) Create(_ context.Context, a *models.Account) error {
	if _, ok := f.byEmail[a.Email]; ok {
		return apperrors.Wrap(apperrors.ErrConflict, errors.New("duplicate email"))
	}
	a.ID = uuid.New()
	f.byEmail[a.Email] = *a
	return nil
}

func (f *fakeAccounts) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (f *fakeAccounts) FindByID(_ context.Context, id uuid.UUID) (*models.Account, error) {
	for _, a := range f.byEmail {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeAccounts) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	f.revoked[tokenID] = expiresAt
	return nil
}

func (f *fakeAccounts) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := f.revoked[tokenID]
	return ok, nil
}

// --- SNS ---

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topicArn string, message []byte) error {
	args := m.Called(ctx, topicArn, message)
	return args.Error(0)
}

const testTopic = "arn:aws:sns:eu-central-1:000000000000:shop-events"

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }
