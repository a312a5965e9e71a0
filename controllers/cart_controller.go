package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/shop-backend/models"
	"github.com/yashrajoria/shop-backend/outcome"
	"github.com/yashrajoria/shop-backend/services"
)

// CartController handles the cart screen.
type CartController struct {
	cartService services.CartService
}

func NewCartController(cartService services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// GetCart handles GET /cart.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	renderOutcome(c, outcome.Last(cc.cartService.Lines(c.Request.Context(), userID)))
}

// LiveCart handles GET /cart/live. Every outcome of the live cart query is
// sent as a server-sent "outcome" event until the client goes away.
func (cc *CartController) LiveCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	stream, svcErr := cc.cartService.WatchLines(c.Request.Context(), userID)
	if svcErr != nil {
		renderServiceError(c, svcErr)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	// the stream closes once the request context is done
	for o := range stream {
		c.SSEvent("outcome", outcomeBody(o))
		c.Writer.Flush()
	}
}

// AddItem handles POST /cart.
func (cc *CartController) AddItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	item, svcErr := cc.cartService.Add(c.Request.Context(), userID, req)
	if svcErr != nil {
		renderServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// UpdateItem handles PATCH /cart/:product_id.
func (cc *CartController) UpdateItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}
	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	item, svcErr := cc.cartService.SetQuantity(c.Request.Context(), userID, productID, req.Quantity)
	if svcErr != nil {
		renderServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// RemoveItem handles DELETE /cart/:product_id.
func (cc *CartController) RemoveItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if svcErr := cc.cartService.Remove(c.Request.Context(), userID, productID); svcErr != nil {
		renderServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}
