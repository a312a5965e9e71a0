package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yashrajoria/shop-backend/apperrors"
	"github.com/yashrajoria/shop-backend/models"
	"github.com/yashrajoria/shop-backend/outcome"
	aws_pkg "github.com/yashrajoria/shop-backend/pkg/aws"
	"github.com/yashrajoria/shop-backend/repository"
	"github.com/yashrajoria/shop-backend/usecases"
	"go.uber.org/zap"
)

// MaxCouponAmount caps a single coupon.
var MaxCouponAmount = decimal.NewFromInt(500)

type CouponService interface {
	// Coupon yields the user's coupon as of now, or nil when there is none.
	Coupon(ctx context.Context, userID string, now time.Time) outcome.Stream[*models.CouponView]
	// Activate exchanges loyalty points for a coupon worth amount.
	Activate(ctx context.Context, userID string, amount decimal.Decimal) (*models.CouponView, *ServiceError)
	Remove(ctx context.Context, userID string) *ServiceError
}

type couponServiceImpl struct {
	coupons repository.CouponRepository
	users   repository.UserRepository
	notify  notifier
	logger  *zap.Logger
}

func NewCouponService(
	coupons repository.CouponRepository,
	users repository.UserRepository,
	snsClient aws_pkg.SNSPublisher,
	snsTopicArn string,
	metrics aws_pkg.MetricsRecorder,
	logger *zap.Logger,
) CouponService {
	return &couponServiceImpl{
		coupons: coupons,
		users:   users,
		notify:  notifier{sns: snsClient, topicArn: snsTopicArn, metrics: metrics, logger: logger},
		logger:  logger,
	}
}

func NewCouponView(c models.Coupon, now time.Time) models.CouponView {
	return models.CouponView{
		Coupon:        c,
		DisplayAmount: models.FormatPrice(c.Amount),
		ExpiresAt:     usecases.CouponExpiresAt(c.ActivatedAt),
		Expired:       usecases.IsCouponExpired(c.ActivatedAt, now),
	}
}

func (s *couponServiceImpl) Coupon(ctx context.Context, userID string, now time.Time) outcome.Stream[*models.CouponView] {
	return outcome.Run(ctx, func(ctx context.Context) (*models.CouponView, error) {
		c, err := s.coupons.Find(ctx, userID)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fromRepo(ctx, s.logger, err, "Failed to load coupon", zap.String("user_id", userID))
		}
		view := NewCouponView(*c, now)
		return &view, nil
	})
}

var errActiveCoupon = &ServiceError{StatusCode: http.StatusConflict, Message: "An active coupon already exists"}

func (s *couponServiceImpl) Activate(ctx context.Context, userID string, amount decimal.Decimal) (*models.CouponView, *ServiceError) {
	if !amount.IsPositive() || amount.GreaterThan(MaxCouponAmount) || !amount.Equal(amount.Round(2)) {
		return nil, badRequest(fmt.Sprintf("Coupon amount must be between 0,01 and %s", models.FormatPrice(MaxCouponAmount)))
	}

	now := time.Now().UTC()
	existing, err := s.coupons.Find(ctx, userID)
	switch {
	case err == nil && !usecases.IsCouponExpired(existing.ActivatedAt, now):
		return nil, errActiveCoupon
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		return nil, fromRepo(ctx, s.logger, err, "Failed to load coupon", zap.String("user_id", userID))
	}

	cost := usecases.CouponCost(amount)
	if _, err := s.users.AddPoints(ctx, userID, -cost); err != nil {
		if errors.Is(err, repository.ErrInsufficientPoints) {
			return nil, badRequest(fmt.Sprintf("Not enough points: %d needed", cost))
		}
		return nil, fromRepo(ctx, s.logger, err, "Failed to spend points", zap.String("user_id", userID))
	}

	coupon := models.Coupon{UserID: userID, Amount: amount, ActivatedAt: now}
	if err := s.coupons.Activate(ctx, &coupon, now.Add(-usecases.CouponLifetime)); err != nil {
		s.refund(ctx, userID, cost)
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, errActiveCoupon
		}
		return nil, fromRepo(ctx, s.logger, err, "Failed to activate coupon", zap.String("user_id", userID))
	}

	s.notify.publish(ctx, EventCouponActivated, models.CouponActivatedEvent{
		EventType:   EventCouponActivated,
		UserID:      userID,
		Amount:      amount.StringFixed(2),
		PointsSpent: cost,
		Timestamp:   now,
	})
	s.notify.count(ctx, aws_pkg.MetricCouponsActivated)
	s.logger.Info("Coupon activated", zap.String("user_id", userID), zap.Int("points_spent", cost))

	view := NewCouponView(coupon, now)
	return &view, nil
}

func (s *couponServiceImpl) refund(ctx context.Context, userID string, points int) {
	if _, err := s.users.AddPoints(ctx, userID, points); err != nil {
		s.logger.Error("Failed to refund points", zap.String("user_id", userID), zap.Int("points", points), zap.Error(err))
	}
}

func (s *couponServiceImpl) Remove(ctx context.Context, userID string) *ServiceError {
	if err := s.coupons.Delete(ctx, userID); err != nil {
		return fromRepo(ctx, s.logger, err, "Failed to remove coupon", zap.String("user_id", userID))
	}
	return nil
}
