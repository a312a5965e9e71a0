package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yashrajoria/shop-backend/models"
	"github.com/yashrajoria/shop-backend/outcome"
	"github.com/yashrajoria/shop-backend/services"
	"github.com/yashrajoria/shop-backend/usecases"
	"go.uber.org/zap"
)

type orderFixture struct {
	orders  *fakeOrders
	carts   *fakeCarts
	coupons *fakeCoupons
	users   *fakeUsers
	pub     *MockPublisher
	svc     services.OrderService
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orders:  &fakeOrders{},
		carts:   newFakeCarts(),
		coupons: newFakeCoupons(),
		users:   newFakeUsers(),
		pub:     new(MockPublisher),
	}
	f.svc = services.NewOrderService(f.orders, f.carts, f.coupons, f.users, newFakeCatalog(), f.pub, testTopic, nil, zap.NewNop())
	return f
}

func TestOrderService_PlaceOrder(t *testing.T) {
	f := newOrderFixture()
	f.carts.set("u-1", 2, 3)
	f.carts.set("u-1", 4, 1)
	f.coupons.byUser["u-1"] = models.Coupon{UserID: "u-1", Amount: price("10"), ActivatedAt: time.Now().Add(-24 * time.Hour)}

	var event models.OrderPlacedEvent
	f.pub.On("Publish", mock.Anything, testTopic, mock.MatchedBy(func(body []byte) bool {
		return json.Unmarshal(body, &event) == nil
	})).Return(nil).Once()

	order, svcErr := f.svc.PlaceOrder(context.Background(), "u-1")

	require.Nil(t, svcErr)
	assert.True(t, price("127.89").Equal(order.Total))
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].ProductID)

	require.Len(t, f.orders.records, 1)
	assert.Equal(t, map[string]int{"2": 3, "4": 1}, f.orders.records[0].Products)
	assert.Equal(t, 127, f.users.profiles["u-1"].Points)
	assert.NotContains(t, f.coupons.byUser, "u-1")
	assert.Empty(t, f.carts.lines["u-1"])

	f.pub.AssertExpectations(t)
	assert.Equal(t, services.EventOrderPlaced, event.EventType)
	assert.Equal(t, order.ID, event.OrderID)
	assert.Equal(t, "127.89", event.Total)
	assert.Equal(t, 127, event.PointsEarned)
}

func TestOrderService_PlaceOrderIgnoresExpiredCoupon(t *testing.T) {
	f := newOrderFixture()
	f.carts.set("u-1", 4, 1)
	f.coupons.byUser["u-1"] = models.Coupon{UserID: "u-1", Amount: price("10"), ActivatedAt: time.Now().Add(-20 * 24 * time.Hour)}
	f.pub.On("Publish", mock.Anything, testTopic, mock.Anything).Return(nil)

	order, svcErr := f.svc.PlaceOrder(context.Background(), "u-1")

	require.Nil(t, svcErr)
	assert.True(t, price("70.99").Equal(order.Total))
	assert.Contains(t, f.coupons.byUser, "u-1")
	assert.Equal(t, 70, f.users.profiles["u-1"].Points)
}

func TestOrderService_PlaceOrderCouponFloorsAtZero(t *testing.T) {
	f := newOrderFixture()
	f.carts.set("u-1", 2, 1)
	f.coupons.byUser["u-1"] = models.Coupon{UserID: "u-1", Amount: price("50"), ActivatedAt: time.Now()}
	f.pub.On("Publish", mock.Anything, testTopic, mock.Anything).Return(errBoom)

	order, svcErr := f.svc.PlaceOrder(context.Background(), "u-1")

	// a failed publish does not fail the order
	require.Nil(t, svcErr)
	assert.True(t, order.Total.IsZero())
	assert.Zero(t, f.users.profiles["u-1"].Points)
}

func TestOrderService_PlaceOrderRejects(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		f := newOrderFixture()
		_, svcErr := f.svc.PlaceOrder(context.Background(), "u-1")
		require.NotNil(t, svcErr)
		assert.Equal(t, 400, svcErr.StatusCode)
		assert.Equal(t, "Cart is empty", svcErr.Message)
	})

	t.Run("only unavailable products", func(t *testing.T) {
		f := newOrderFixture()
		f.carts.set("u-1", 77, 1)
		_, svcErr := f.svc.PlaceOrder(context.Background(), "u-1")
		require.NotNil(t, svcErr)
		assert.Equal(t, 400, svcErr.StatusCode)
	})

	t.Run("store failure keeps the cart", func(t *testing.T) {
		f := newOrderFixture()
		f.carts.set("u-1", 1, 1)
		f.orders.err = errBoom
		_, svcErr := f.svc.PlaceOrder(context.Background(), "u-1")
		require.NotNil(t, svcErr)
		assert.Equal(t, 500, svcErr.StatusCode)
		assert.Equal(t, "Failed to place order", svcErr.Message)
		assert.Len(t, f.carts.lines["u-1"], 1)
		f.pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrderService_Orders(t *testing.T) {
	f := newOrderFixture()
	now := time.Now()
	f.orders.records = []models.OrderRecord{
		{ID: "old", UserID: "u-1", PlacedAt: now.Add(-48 * time.Hour), Total: price("22.30"), Products: map[string]int{"2": 1}},
		{ID: "new", UserID: "u-1", PlacedAt: now, Total: price("70.99"), Products: map[string]int{"4": 1, "bogus": 3}},
		{ID: "other", UserID: "u-2", PlacedAt: now, Total: price("1"), Products: map[string]int{"1": 1}},
	}

	last := outcome.Last(f.svc.Orders(context.Background(), "u-1", usecases.DateDescending))
	require.True(t, last.IsSuccess())
	orders := last.Data()
	require.Len(t, orders, 2)
	assert.Equal(t, "new", orders[0].ID)
	assert.Len(t, orders[0].Items, 1)

	last = outcome.Last(f.svc.Orders(context.Background(), "u-1", usecases.DateAscending))
	require.True(t, last.IsSuccess())
	assert.Equal(t, "old", last.Data()[0].ID)

	none := outcome.Last(f.svc.Orders(context.Background(), "u-3", usecases.DateDescending))
	require.True(t, none.IsSuccess())
	assert.Empty(t, none.Data())
}
