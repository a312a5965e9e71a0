package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/shop-backend/services"
)

const (
	UserContextKey  = "userID"
	EmailContextKey = "email"
	TokenContextKey = "accessToken"

	// AccessTokenCookie is read when no Authorization header is sent.
	AccessTokenCookie = "access_token"
)

// Authenticator resolves an access token. services.AuthService satisfies it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*services.TokenClaims, *services.ServiceError)
}

// AuthMiddleware rejects requests without a valid, unrevoked access token.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
			return
		}
		claims, svcErr := auth.Authenticate(c.Request.Context(), token)
		if svcErr != nil {
			c.AbortWithStatusJSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
			return
		}
		setClaims(c, token, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware identifies the caller when a valid token is sent and
// lets anonymous requests through otherwise.
func OptionalAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, svcErr := auth.Authenticate(c.Request.Context(), token); svcErr == nil {
				setClaims(c, token, claims)
			}
		}
		c.Next()
	}
}

func setClaims(c *gin.Context, token string, claims *services.TokenClaims) {
	c.Set(UserContextKey, claims.UserID)
	c.Set(EmailContextKey, claims.Email)
	c.Set(TokenContextKey, token)
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if !strings.HasPrefix(header, "Bearer ") {
			return ""
		}
		return strings.TrimSpace(header[len("Bearer "):])
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

func GetUserID(c *gin.Context) (string, error) {
	if val, ok := c.Get(UserContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id, nil
		}
	}
	return "", errors.New("user ID not found in context")
}

// OptionalUserID is GetUserID for routes open to anonymous callers.
func OptionalUserID(c *gin.Context) string {
	return c.GetString(UserContextKey)
}
