package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/shop-backend/middleware"
	"github.com/yashrajoria/shop-backend/models"
	"github.com/yashrajoria/shop-backend/services"
)

// AuthController handles signup, login and session endpoints.
type AuthController struct {
	authService  services.AuthService
	secureCookie bool
}

func NewAuthController(authService services.AuthService, secureCookie bool) *AuthController {
	return &AuthController{authService: authService, secureCookie: secureCookie}
}

// Signup handles POST /auth/signup.
func (ac *AuthController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	handle, svcErr := ac.authService.Signup(c.Request.Context(), req)
	if svcErr != nil {
		renderServiceError(c, svcErr)
		return
	}
	ac.setTokenCookie(c, handle)
	c.JSON(http.StatusCreated, gin.H{"user": handle})
}

// Login handles POST /auth/login.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	handle, svcErr := ac.authService.Login(c.Request.Context(), req)
	if svcErr != nil {
		renderServiceError(c, svcErr)
		return
	}
	ac.setTokenCookie(c, handle)
	c.JSON(http.StatusOK, gin.H{"user": handle})
}

// Logout handles POST /auth/logout. The token stops working immediately.
func (ac *AuthController) Logout(c *gin.Context) {
	token := c.GetString(middleware.TokenContextKey)
	if svcErr := ac.authService.Logout(c.Request.Context(), token); svcErr != nil {
		renderServiceError(c, svcErr)
		return
	}
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", ac.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me handles GET /auth/me.
func (ac *AuthController) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	handle, svcErr := ac.authService.CurrentUser(c.Request.Context(), userID)
	if svcErr != nil {
		renderServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": handle})
}

func (ac *AuthController) setTokenCookie(c *gin.Context, handle *models.UserHandle) {
	maxAge := int(time.Until(handle.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, handle.AccessToken, maxAge, "/", "", ac.secureCookie, true)
}
