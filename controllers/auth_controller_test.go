package controllers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashrajoria/shop-backend/controllers"
	"github.com/yashrajoria/shop-backend/middleware"
	"github.com/yashrajoria/shop-backend/models"
	"github.com/yashrajoria/shop-backend/outcome"
	"github.com/yashrajoria/shop-backend/services"
	"github.com/yashrajoria/shop-backend/validation"
)

func setupAuthRouter(as services.AuthService, ps services.ProfileService) *gin.Engine {
	r := gin.New()
	ac := controllers.NewAuthController(as, false)
	vc := controllers.NewValidationController()
	pc := controllers.NewProfileController(ps)
	r.POST("/auth/signup", ac.Signup)
	r.POST("/auth/login", ac.Login)
	r.POST("/validate/signup", vc.Signup)
	r.POST("/validate/login", vc.Login)
	r.POST("/validate/address", vc.Address)

	authed := withUser(r).Group("")
	authed.POST("/auth/logout", ac.Logout)
	authed.GET("/auth/me", ac.Me)
	authed.GET("/profile", pc.GetProfile)
	authed.PUT("/profile", pc.UpdateProfile)
	return r
}

func handleFor(email string) *models.UserHandle {
	return &models.UserHandle{UserID: "user-test-id", Email: email, AccessToken: "token-abc", ExpiresAt: time.Now().Add(time.Hour)}
}

func TestController_Signup(t *testing.T) {
	as := &mockAuthService{
		signupFn: func(_ context.Context, req models.SignupRequest) (*models.UserHandle, *services.ServiceError) {
			if req.Password == "" {
				return nil, &services.ServiceError{
					StatusCode: http.StatusUnprocessableEntity,
					Message:    "Validation failed",
					Fields:     validation.Failures{validation.FieldPassword: {Message: validation.MsgPasswordEmpty}},
				}
			}
			return handleFor(req.Email), nil
		},
	}
	r := setupAuthRouter(as, nil)

	w := do(r, http.MethodPost, "/auth/signup", `{"email":"a@example.com","password":"Secret12!"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), middleware.AccessTokenCookie+"=token-abc")
	assert.Contains(t, w.Header().Get("Set-Cookie"), "HttpOnly")

	w = do(r, http.MethodPost, "/auth/signup", `{"email":"a@example.com"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"Validation failed","fields":{"password":{"successful":false,"message":"Password cannot be empty"}}}`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/auth/signup", `{`).Code)
}

func TestController_LoginLogoutMe(t *testing.T) {
	var revoked string
	as := &mockAuthService{
		loginFn: func(_ context.Context, req models.LoginRequest) (*models.UserHandle, *services.ServiceError) {
			if req.Password != "Secret12!" {
				return nil, &services.ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid email or password"}
			}
			return handleFor(req.Email), nil
		},
		logoutFn: func(_ context.Context, token string) *services.ServiceError {
			revoked = token
			return nil
		},
		currentFn: func(_ context.Context, userID string) (*models.UserHandle, *services.ServiceError) {
			return &models.UserHandle{UserID: userID, Email: "test@example.com"}, nil
		},
	}
	r := setupAuthRouter(as, nil)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/auth/login", `{"email":"a@example.com","password":"Secret12!"}`).Code)
	w := do(r, http.MethodPost, "/auth/login", `{"email":"a@example.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid email or password"}`, w.Body.String())

	w = do(r, http.MethodPost, "/auth/logout", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "token-abc", revoked)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")

	w = do(r, http.MethodGet, "/auth/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-test-id", decode(t, w)["user"].(map[string]interface{})["user_id"])
}

func TestController_ValidateForms(t *testing.T) {
	r := setupAuthRouter(&mockAuthService{}, nil)

	w := do(r, http.MethodPost, "/validate/signup", `{"first_name":"Anna","last_name":"Nowak","email":"a@b.c","password":"secret","confirm_password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, false, resp["valid"])
	fields := resp["fields"].(map[string]interface{})
	assert.Len(t, fields, 5)
	assert.Equal(t, true, fields["first_name"].(map[string]interface{})["successful"])
	assert.Equal(t, validation.MsgPasswordTooShort, fields["password"].(map[string]interface{})["message"])

	w = do(r, http.MethodPost, "/validate/login", `{"email":"a@b.c","password":"x"}`)
	assert.Equal(t, true, decode(t, w)["valid"])

	w = do(r, http.MethodPost, "/validate/address", `{"first_name":"Anna","last_name":"Nowak","street":"Polna 1","city":"Kraków","zip_code":"30-001"}`)
	assert.Equal(t, true, decode(t, w)["valid"])
}

type mockProfileService struct {
	profileFn func(ctx context.Context, userID string) outcome.Stream[models.UserProfile]
	updateFn  func(ctx context.Context, userID, email string, req models.UpdateProfileRequest) (*models.UserProfile, *services.ServiceError)
}

func (m *mockProfileService) Profile(ctx context.Context, userID string) outcome.Stream[models.UserProfile] {
	return m.profileFn(ctx, userID)
}
func (m *mockProfileService) UpdateProfile(ctx context.Context, userID, email string, req models.UpdateProfileRequest) (*models.UserProfile, *services.ServiceError) {
	return m.updateFn(ctx, userID, email, req)
}

func TestController_Profile(t *testing.T) {
	ps := &mockProfileService{
		profileFn: func(_ context.Context, userID string) outcome.Stream[models.UserProfile] {
			return done(models.UserProfile{UserID: userID, Points: 42})
		},
		updateFn: func(_ context.Context, userID, email string, req models.UpdateProfileRequest) (*models.UserProfile, *services.ServiceError) {
			return &models.UserProfile{UserID: userID, Email: email, City: req.City}, nil
		},
	}
	r := setupAuthRouter(&mockAuthService{}, ps)

	w := do(r, http.MethodGet, "/profile", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(42), decode(t, w)["data"].(map[string]interface{})["points"])

	w = do(r, http.MethodPut, "/profile", `{"city":"Kraków"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"email":"test@example.com"`))
}
