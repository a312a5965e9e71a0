package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/yashrajoria/shop-backend/apperrors"
	"github.com/yashrajoria/shop-backend/models"
	aws_pkg "github.com/yashrajoria/shop-backend/pkg/aws"
	"github.com/yashrajoria/shop-backend/repository"
	"github.com/yashrajoria/shop-backend/validation"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.UserHandle, *ServiceError)
	Login(ctx context.Context, req models.LoginRequest) (*models.UserHandle, *ServiceError)
	Logout(ctx context.Context, token string) *ServiceError
	// Authenticate resolves a bearer token to its claims, rejecting revoked tokens.
	Authenticate(ctx context.Context, token string) (*TokenClaims, *ServiceError)
	CurrentUser(ctx context.Context, userID string) (*models.UserHandle, *ServiceError)
}

type authServiceImpl struct {
	accounts repository.AccountRepository
	tokens   repository.TokenRepository
	users    repository.UserRepository
	issuer   *TokenService
	notify   notifier
	logger   *zap.Logger
}

func NewAuthService(
	accounts repository.AccountRepository,
	tokens repository.TokenRepository,
	users repository.UserRepository,
	issuer *TokenService,
	metrics aws_pkg.MetricsRecorder,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		accounts: accounts,
		tokens:   tokens,
		users:    users,
		issuer:   issuer,
		notify:   notifier{metrics: metrics, logger: logger},
		logger:   logger,
	}
}

var errInvalidLogin = &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid email or password"}

func (s *authServiceImpl) Signup(ctx context.Context, req models.SignupRequest) (*models.UserHandle, *ServiceError) {
	failures := validation.ValidateSignup(validation.SignupForm{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if !failures.Valid() {
		return nil, invalidForm(failures)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to create account"}
	}
	account := &models.Account{Email: req.Email, PasswordHash: string(hash)}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, &ServiceError{StatusCode: http.StatusConflict, Message: "Email is already registered"}
		}
		return nil, fromRepo(ctx, s.logger, err, "Failed to create account")
	}

	profile := &models.UserProfile{
		UserID:    account.ID.String(),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     account.Email,
	}
	if err := s.users.Upsert(ctx, profile); err != nil {
		// the account works without a profile; the profile screen recreates it
		s.logger.Warn("Failed to create profile", zap.String("user_id", profile.UserID), zap.Error(err))
	}

	s.notify.count(ctx, aws_pkg.MetricSignups)
	s.logger.Info("Account created", zap.String("user_id", profile.UserID))
	return s.handle(account.ID.String(), account.Email)
}

func (s *authServiceImpl) Login(ctx context.Context, req models.LoginRequest) (*models.UserHandle, *ServiceError) {
	if failures := validation.ValidateLogin(req.Email, req.Password); !failures.Valid() {
		return nil, invalidForm(failures)
	}

	account, err := s.accounts.FindByEmail(ctx, req.Email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, errInvalidLogin
	}
	if err != nil {
		return nil, fromRepo(ctx, s.logger, err, "Failed to log in")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errInvalidLogin
	}
	return s.handle(account.ID.String(), account.Email)
}

func (s *authServiceImpl) Logout(ctx context.Context, token string) *ServiceError {
	claims, svcErr := s.Authenticate(ctx, token)
	if svcErr != nil {
		return svcErr
	}
	if err := s.tokens.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fromRepo(ctx, s.logger, err, "Failed to log out")
	}
	return nil
}

func (s *authServiceImpl) Authenticate(ctx context.Context, token string) (*TokenClaims, *ServiceError) {
	claims, err := s.issuer.Validate(token)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid or expired token"}
	}
	revoked, err := s.tokens.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, fromRepo(ctx, s.logger, err, "Failed to check token")
	}
	if revoked {
		return nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Token has been revoked"}
	}
	return claims, nil
}

func (s *authServiceImpl) CurrentUser(ctx context.Context, userID string) (*models.UserHandle, *ServiceError) {
	profile, err := s.users.FindByID(ctx, userID)
	if err == nil {
		return &models.UserHandle{UserID: profile.UserID, Email: profile.Email}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fromRepo(ctx, s.logger, err, "Failed to load user")
	}
	return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "User not found"}
}

func (s *authServiceImpl) handle(userID, email string) (*models.UserHandle, *ServiceError) {
	token, claims, err := s.issuer.Issue(userID, email)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to issue token"}
	}
	return &models.UserHandle{UserID: userID, Email: email, AccessToken: token, ExpiresAt: claims.ExpiresAt}, nil
}
