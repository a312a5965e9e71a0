package controllers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashrajoria/shop-backend/controllers"
	"github.com/yashrajoria/shop-backend/models"
	"github.com/yashrajoria/shop-backend/outcome"
	"github.com/yashrajoria/shop-backend/services"
)

func setupCartRouter(cs services.CartService) *gin.Engine {
	r := withUser(gin.New())
	cc := controllers.NewCartController(cs)
	r.GET("/cart", cc.GetCart)
	r.GET("/cart/live", cc.LiveCart)
	r.POST("/cart", cc.AddItem)
	r.PATCH("/cart/:product_id", cc.UpdateItem)
	r.DELETE("/cart/:product_id", cc.RemoveItem)
	return r
}

func TestController_GetCart(t *testing.T) {
	cs := &mockCartService{
		linesFn: func(context.Context, string) outcome.Stream[models.CartView] {
			return done(models.CartView{Items: []models.CartLineItem{{ProductID: 4, Quantity: 2}}, DisplayTotal: "141,98 PLN"})
		},
	}
	r := setupCartRouter(cs)

	w := do(r, http.MethodGet, "/cart", "")

	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "141,98 PLN", data["display_total"])
}

func TestController_GetCart_Unauthorized(t *testing.T) {
	r := gin.New()
	cc := controllers.NewCartController(&mockCartService{})
	r.GET("/cart", cc.GetCart)

	w := do(r, http.MethodGet, "/cart", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestController_LiveCart_StreamsOutcomes(t *testing.T) {
	cs := &mockCartService{
		watchFn: func(context.Context, string) (outcome.Stream[models.CartView], *services.ServiceError) {
			return streamOf(
				outcome.Loading[models.CartView](true),
				outcome.Success(models.CartView{DisplayTotal: "0,00 PLN"}),
				outcome.Loading[models.CartView](false),
				outcome.Error[models.CartView]("Failed to load cart"),
			), nil
		},
	}
	r := setupCartRouter(cs)

	w := do(r, http.MethodGet, "/cart/live", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/event-stream"))
	body := w.Body.String()
	assert.Equal(t, 4, strings.Count(body, "event:outcome"))
	assert.Contains(t, body, `"status":"success"`)
	assert.Contains(t, body, `"message":"Failed to load cart"`)
	assert.Less(t, strings.Index(body, `"loading":true`), strings.Index(body, `"status":"success"`))
}

func TestController_LiveCart_SubscribeFailure(t *testing.T) {
	cs := &mockCartService{
		watchFn: func(context.Context, string) (outcome.Stream[models.CartView], *services.ServiceError) {
			return nil, &services.ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to watch cart"}
		},
	}
	r := setupCartRouter(cs)

	w := do(r, http.MethodGet, "/cart/live", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to watch cart"}`, w.Body.String())
}

func TestController_CartMutations(t *testing.T) {
	var added models.AddToCartRequest
	var setQty int
	cs := &mockCartService{
		addFn: func(_ context.Context, userID string, req models.AddToCartRequest) (*models.CartRecord, *services.ServiceError) {
			added = req
			return &models.CartRecord{UserID: userID, ProductID: req.ProductID, Quantity: 1}, nil
		},
		setFn: func(_ context.Context, _ string, productID, quantity int) (*models.CartRecord, *services.ServiceError) {
			if quantity > services.MaxCartQuantity {
				return nil, &services.ServiceError{StatusCode: http.StatusBadRequest, Message: "Quantity must be between 1 and 99"}
			}
			setQty = quantity
			return &models.CartRecord{ProductID: productID, Quantity: quantity}, nil
		},
		removeFn: func(_ context.Context, _ string, productID int) *services.ServiceError {
			if productID == 9 {
				return &services.ServiceError{StatusCode: http.StatusNotFound, Message: "Not found"}
			}
			return nil
		},
	}
	r := setupCartRouter(cs)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/cart", `{"product_id":3}`).Code)
	assert.Equal(t, 3, added.ProductID)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/cart", `{"quantity":2}`).Code)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPatch, "/cart/3", `{"quantity":5}`).Code)
	assert.Equal(t, 5, setQty)
	w := do(r, http.MethodPatch, "/cart/3", `{"quantity":100}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Quantity must be between 1 and 99"}`, w.Body.String())
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPatch, "/cart/3", `{"quantity":0}`).Code)

	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/cart/3", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/cart/9", "").Code)
}
