package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/yashrajoria/shop-backend/middleware"
	"github.com/yashrajoria/shop-backend/models"
	"github.com/yashrajoria/shop-backend/outcome"
	"github.com/yashrajoria/shop-backend/services"
	"github.com/yashrajoria/shop-backend/usecases"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mock services ---

func streamOf[T any](values ...outcome.Outcome[T]) outcome.Stream[T] {
	ch := make(chan outcome.Outcome[T], len(values))
	for _, v := range values {
		ch <- v
	}
	close(ch)
	return ch
}

func done[T any](data T) outcome.Stream[T] {
	return streamOf(outcome.Loading[T](true), outcome.Success(data), outcome.Loading[T](false))
}

type mockProductService struct {
	productsFn   func(ctx context.Context, userID string, q services.ProductQuery) outcome.Stream[[]models.Product]
	productFn    func(ctx context.Context, userID string, id int) outcome.Stream[models.Product]
	categoriesFn func(ctx context.Context) outcome.Stream[[]string]
	favouritesFn func(ctx context.Context, userID string) outcome.Stream[[]models.Product]
}

func (m *mockProductService) Products(ctx context.Context, userID string, q services.ProductQuery) outcome.Stream[[]models.Product] {
	return m.productsFn(ctx, userID, q)
}
func (m *mockProductService) Product(ctx context.Context, userID string, id int) outcome.Stream[models.Product] {
	return m.productFn(ctx, userID, id)
}
func (m *mockProductService) Categories(ctx context.Context) outcome.Stream[[]string] {
	return m.categoriesFn(ctx)
}
func (m *mockProductService) Favourites(ctx context.Context, userID string) outcome.Stream[[]models.Product] {
	return m.favouritesFn(ctx, userID)
}

type mockFavouriteService struct {
	addFn    func(ctx context.Context, userID string, productID int) (*models.FavouriteRecord, *services.ServiceError)
	removeFn func(ctx context.Context, userID string, productID int) *services.ServiceError
}

func (m *mockFavouriteService) Add(ctx context.Context, userID string, productID int) (*models.FavouriteRecord, *services.ServiceError) {
	return m.addFn(ctx, userID, productID)
}
func (m *mockFavouriteService) Remove(ctx context.Context, userID string, productID int) *services.ServiceError {
	return m.removeFn(ctx, userID, productID)
}

type mockCartService struct {
	linesFn  func(ctx context.Context, userID string) outcome.Stream[models.CartView]
	watchFn  func(ctx context.Context, userID string) (outcome.Stream[models.CartView], *services.ServiceError)
	addFn    func(ctx context.Context, userID string, req models.AddToCartRequest) (*models.CartRecord, *services.ServiceError)
	setFn    func(ctx context.Context, userID string, productID, quantity int) (*models.CartRecord, *services.ServiceError)
	removeFn func(ctx context.Context, userID string, productID int) *services.ServiceError
}

func (m *mockCartService) Lines(ctx context.Context, userID string) outcome.Stream[models.CartView] {
	return m.linesFn(ctx, userID)
}
func (m *mockCartService) WatchLines(ctx context.Context, userID string) (outcome.Stream[models.CartView], *services.ServiceError) {
	return m.watchFn(ctx, userID)
}
func (m *mockCartService) Add(ctx context.Context, userID string, req models.AddToCartRequest) (*models.CartRecord, *services.ServiceError) {
	return m.addFn(ctx, userID, req)
}
func (m *mockCartService) SetQuantity(ctx context.Context, userID string, productID, quantity int) (*models.CartRecord, *services.ServiceError) {
	return m.setFn(ctx, userID, productID, quantity)
}
func (m *mockCartService) Remove(ctx context.Context, userID string, productID int) *services.ServiceError {
	return m.removeFn(ctx, userID, productID)
}

type mockOrderService struct {
	ordersFn func(ctx context.Context, userID string, order usecases.OrderOrder) outcome.Stream[[]models.Order]
	placeFn  func(ctx context.Context, userID string) (*models.Order, *services.ServiceError)
}

func (m *mockOrderService) Orders(ctx context.Context, userID string, order usecases.OrderOrder) outcome.Stream[[]models.Order] {
	return m.ordersFn(ctx, userID, order)
}
func (m *mockOrderService) PlaceOrder(ctx context.Context, userID string) (*models.Order, *services.ServiceError) {
	return m.placeFn(ctx, userID)
}

type mockCouponService struct {
	couponFn   func(ctx context.Context, userID string, now time.Time) outcome.Stream[*models.CouponView]
	activateFn func(ctx context.Context, userID string, amount decimal.Decimal) (*models.CouponView, *services.ServiceError)
	removeFn   func(ctx context.Context, userID string) *services.ServiceError
}

func (m *mockCouponService) Coupon(ctx context.Context, userID string, now time.Time) outcome.Stream[*models.CouponView] {
	return m.couponFn(ctx, userID, now)
}
func (m *mockCouponService) Activate(ctx context.Context, userID string, amount decimal.Decimal) (*models.CouponView, *services.ServiceError) {
	return m.activateFn(ctx, userID, amount)
}
func (m *mockCouponService) Remove(ctx context.Context, userID string) *services.ServiceError {
	return m.removeFn(ctx, userID)
}

type mockAuthService struct {
	signupFn  func(ctx context.Context, req models.SignupRequest) (*models.UserHandle, *services.ServiceError)
	loginFn   func(ctx context.Context, req models.LoginRequest) (*models.UserHandle, *services.ServiceError)
	logoutFn  func(ctx context.Context, token string) *services.ServiceError
	authFn    func(ctx context.Context, token string) (*services.TokenClaims, *services.ServiceError)
	currentFn func(ctx context.Context, userID string) (*models.UserHandle, *services.ServiceError)
}

func (m *mockAuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.UserHandle, *services.ServiceError) {
	return m.signupFn(ctx, req)
}
func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.UserHandle, *services.ServiceError) {
	return m.loginFn(ctx, req)
}
func (m *mockAuthService) Logout(ctx context.Context, token string) *services.ServiceError {
	return m.logoutFn(ctx, token)
}
func (m *mockAuthService) Authenticate(ctx context.Context, token string) (*services.TokenClaims, *services.ServiceError) {
	return m.authFn(ctx, token)
}
func (m *mockAuthService) CurrentUser(ctx context.Context, userID string) (*models.UserHandle, *services.ServiceError) {
	return m.currentFn(ctx, userID)
}

// --- Helpers ---

func withUser(r *gin.Engine) *gin.Engine {
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserContextKey, "user-test-id")
		c.Set(middleware.EmailContextKey, "test@example.com")
		c.Set(middleware.TokenContextKey, "token-abc")
		c.Next()
	})
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

var testProducts = []models.Product{
	{ID: 4, Title: "SSD", Price: models.MustParsePrice("70,99 PLN"), Category: models.CategoryElectronics},
}
