package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/shop-backend/controllers"
	"github.com/yashrajoria/shop-backend/middleware"
)

// Controllers groups every HTTP handler set the API exposes.
type Controllers struct {
	Auth       *controllers.AuthController
	Validation *controllers.ValidationController
	Products   *controllers.ProductController
	Cart       *controllers.CartController
	Orders     *controllers.OrderController
	Coupons    *controllers.CouponController
	Profile    *controllers.ProfileController
}

// LiveCartPath streams for as long as the client listens; request timeouts
// must not apply to it.
const LiveCartPath = "/cart/live"

// RegisterRoutes sets up all routes. authLimiter throttles the credential
// endpoints per client IP.
func RegisterRoutes(r *gin.Engine, ctrl Controllers, auth middleware.Authenticator, authLimiter *middleware.RateLimiter) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	authRoutes := r.Group("/auth")
	{
		limited := authRoutes.Group("", middleware.RateLimitMiddleware(authLimiter))
		limited.POST("/signup", ctrl.Auth.Signup)
		limited.POST("/login", ctrl.Auth.Login)

		authRoutes.POST("/logout", middleware.AuthMiddleware(auth), ctrl.Auth.Logout)
		authRoutes.GET("/me", middleware.AuthMiddleware(auth), ctrl.Auth.Me)
	}

	validateRoutes := r.Group("/validate")
	validateRoutes.POST("/signup", ctrl.Validation.Signup)
	validateRoutes.POST("/login", ctrl.Validation.Login)
	validateRoutes.POST("/address", ctrl.Validation.Address)

	// Catalog browsing is open; a valid token adds favourite flags.
	catalog := r.Group("", middleware.OptionalAuthMiddleware(auth))
	catalog.GET("/products", ctrl.Products.ListProducts)
	catalog.GET("/products/:id", ctrl.Products.GetProduct)
	catalog.GET("/categories", ctrl.Products.ListCategories)
	catalog.POST("/filters/toggle", ctrl.Products.ToggleFilter)

	user := r.Group("", middleware.AuthMiddleware(auth))

	user.GET("/favourites", ctrl.Products.ListFavourites)
	user.POST("/favourites", ctrl.Products.AddFavourite)
	user.DELETE("/favourites/:product_id", ctrl.Products.RemoveFavourite)

	user.GET("/cart", ctrl.Cart.GetCart)
	user.GET(LiveCartPath, ctrl.Cart.LiveCart)
	user.POST("/cart", ctrl.Cart.AddItem)
	user.PATCH("/cart/:product_id", ctrl.Cart.UpdateItem)
	user.DELETE("/cart/:product_id", ctrl.Cart.RemoveItem)

	user.GET("/orders", ctrl.Orders.ListOrders)
	user.POST("/orders", ctrl.Orders.PlaceOrder)
	user.POST("/orders/toggle", ctrl.Orders.ToggleOrder)

	user.GET("/coupon", ctrl.Coupons.GetCoupon)
	user.POST("/coupon", ctrl.Coupons.ActivateCoupon)
	user.DELETE("/coupon", ctrl.Coupons.RemoveCoupon)

	user.GET("/profile", ctrl.Profile.GetProfile)
	user.PUT("/profile", ctrl.Profile.UpdateProfile)
}
