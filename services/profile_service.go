package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yashrajoria/shop-backend/apperrors"
	"github.com/yashrajoria/shop-backend/models"
	"github.com/yashrajoria/shop-backend/outcome"
	"github.com/yashrajoria/shop-backend/repository"
	"github.com/yashrajoria/shop-backend/validation"
	"go.uber.org/zap"
)

type ProfileService interface {
	Profile(ctx context.Context, userID string) outcome.Stream[models.UserProfile]
	UpdateProfile(ctx context.Context, userID, email string, req models.UpdateProfileRequest) (*models.UserProfile, *ServiceError)
}

type profileServiceImpl struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func NewProfileService(users repository.UserRepository, logger *zap.Logger) ProfileService {
	return &profileServiceImpl{users: users, logger: logger}
}

func (s *profileServiceImpl) Profile(ctx context.Context, userID string) outcome.Stream[models.UserProfile] {
	return outcome.Run(ctx, func(ctx context.Context) (models.UserProfile, error) {
		p, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return models.UserProfile{}, fromRepo(ctx, s.logger, err, "Failed to load profile", zap.String("user_id", userID))
		}
		return *p, nil
	})
}

// UpdateProfile validates the address form and saves it. The points balance
// is left alone.
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, userID, email string, req models.UpdateProfileRequest) (*models.UserProfile, *ServiceError) {
	failures := validation.ValidateAddress(validation.AddressForm{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Street:    req.Street,
		City:      req.City,
		ZipCode:   req.ZipCode,
	})
	if !failures.Valid() {
		return nil, invalidForm(failures)
	}

	profile := &models.UserProfile{UserID: userID, Email: email}
	existing, err := s.users.FindByID(ctx, userID)
	switch {
	case err == nil:
		profile = existing
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, fromRepo(ctx, s.logger, err, "Failed to load profile", zap.String("user_id", userID))
	}

	profile.FirstName = strings.TrimSpace(req.FirstName)
	profile.LastName = strings.TrimSpace(req.LastName)
	profile.Street = strings.TrimSpace(req.Street)
	profile.City = strings.TrimSpace(req.City)
	profile.ZipCode = strings.TrimSpace(req.ZipCode)
	if err := s.users.Upsert(ctx, profile); err != nil {
		return nil, fromRepo(ctx, s.logger, err, "Failed to save profile", zap.String("user_id", userID))
	}
	return profile, nil
}
