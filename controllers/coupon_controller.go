package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/shop-backend/models"
	"github.com/yashrajoria/shop-backend/outcome"
	"github.com/yashrajoria/shop-backend/services"
)

// CouponController handles HTTP requests for the loyalty coupon.
type CouponController struct {
	couponService services.CouponService
	now           func() time.Time
}

func NewCouponController(couponService services.CouponService) *CouponController {
	return &CouponController{couponService: couponService, now: time.Now}
}

// GetCoupon handles GET /coupon. Data is null when the user has no coupon.
func (cc *CouponController) GetCoupon(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	renderOutcome(c, outcome.Last(cc.couponService.Coupon(c.Request.Context(), userID, cc.now())))
}

// ActivateCoupon handles POST /coupon.
func (cc *CouponController) ActivateCoupon(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.ActivateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	coupon, svcErr := cc.couponService.Activate(c.Request.Context(), userID, req.Amount)
	if svcErr != nil {
		renderServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"coupon": coupon})
}

// RemoveCoupon handles DELETE /coupon.
func (cc *CouponController) RemoveCoupon(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if svcErr := cc.couponService.Remove(c.Request.Context(), userID); svcErr != nil {
		renderServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Coupon removed"})
}
