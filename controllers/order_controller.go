package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/shop-backend/models"
	"github.com/yashrajoria/shop-backend/outcome"
	"github.com/yashrajoria/shop-backend/services"
	"github.com/yashrajoria/shop-backend/usecases"
)

type OrderController struct {
	orderService services.OrderService
}

func NewOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// ListOrders handles GET /orders?sort=date_desc|date_asc.
func (oc *OrderController) ListOrders(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	order, err := usecases.ParseOrderOrder(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort value"})
		return
	}
	renderOutcome(c, outcome.Last(oc.orderService.Orders(c.Request.Context(), userID, order)))
}

// PlaceOrder handles POST /orders: the current cart becomes an order.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	order, svcErr := oc.orderService.PlaceOrder(c.Request.Context(), userID)
	if svcErr != nil {
		renderServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// ToggleOrder handles POST /orders/toggle. The client sends the list it
// shows and gets it back with one order expanded or collapsed.
func (oc *OrderController) ToggleOrder(c *gin.Context) {
	var req models.ToggleOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": usecases.ToggleOrderExpansion(req.OrderID, req.Orders)})
}
