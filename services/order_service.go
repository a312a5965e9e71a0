package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yashrajoria/shop-backend/apperrors"
	"github.com/yashrajoria/shop-backend/models"
	"github.com/yashrajoria/shop-backend/outcome"
	aws_pkg "github.com/yashrajoria/shop-backend/pkg/aws"
	"github.com/yashrajoria/shop-backend/repository"
	"github.com/yashrajoria/shop-backend/usecases"
	"go.uber.org/zap"
)

type OrderService interface {
	Orders(ctx context.Context, userID string, order usecases.OrderOrder) outcome.Stream[[]models.Order]
	// PlaceOrder turns the user's cart into an order, redeeming an active
	// coupon and crediting loyalty points.
	PlaceOrder(ctx context.Context, userID string) (*models.Order, *ServiceError)
}

type orderServiceImpl struct {
	orders  repository.OrderRepository
	carts   repository.CartRepository
	coupons repository.CouponRepository
	users   repository.UserRepository
	catalog repository.CatalogClient
	notify  notifier
	logger  *zap.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	coupons repository.CouponRepository,
	users repository.UserRepository,
	catalog repository.CatalogClient,
	snsClient aws_pkg.SNSPublisher,
	snsTopicArn string,
	metrics aws_pkg.MetricsRecorder,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		orders:  orders,
		carts:   carts,
		coupons: coupons,
		users:   users,
		catalog: catalog,
		notify:  notifier{sns: snsClient, topicArn: snsTopicArn, metrics: metrics, logger: logger},
		logger:  logger,
	}
}

func (s *orderServiceImpl) Orders(ctx context.Context, userID string, order usecases.OrderOrder) outcome.Stream[[]models.Order] {
	return outcome.Run(ctx, func(ctx context.Context) ([]models.Order, error) {
		records, err := s.orders.FindByUser(ctx, userID)
		if err != nil {
			return nil, fromRepo(ctx, s.logger, err, "Failed to load orders", zap.String("user_id", userID))
		}
		if len(records) == 0 {
			return []models.Order{}, nil
		}
		products, err := s.catalog.Products(ctx, models.CategoryAll)
		if err != nil {
			return nil, fromRepo(ctx, s.logger, err, "Failed to load products")
		}
		return usecases.SortOrders(order, usecases.JoinOrdersWithCatalog(records, products)), nil
	})
}

func (s *orderServiceImpl) PlaceOrder(ctx context.Context, userID string) (*models.Order, *ServiceError) {
	records, err := s.carts.List(ctx, userID)
	if err != nil {
		return nil, fromRepo(ctx, s.logger, err, "Failed to load cart", zap.String("user_id", userID))
	}
	if len(records) == 0 {
		return nil, badRequest("Cart is empty")
	}
	products, err := s.catalog.Products(ctx, models.CategoryAll)
	if err != nil {
		return nil, fromRepo(ctx, s.logger, err, "Failed to load products")
	}
	lines := usecases.JoinCartWithCatalog(records, products)
	if len(lines) == 0 {
		return nil, badRequest("None of the products in the cart are available")
	}

	now := time.Now().UTC()
	total, redeemed := s.applyCoupon(ctx, userID, usecases.CartTotal(lines), now)

	quantities := make(map[string]int, len(lines))
	for _, l := range lines {
		quantities[strconv.Itoa(l.ProductID)] = l.Quantity
	}
	record := &models.OrderRecord{
		ID:       uuid.NewString(),
		UserID:   userID,
		PlacedAt: now,
		Total:    total,
		Products: quantities,
	}
	if err := s.orders.Create(ctx, record); err != nil {
		return nil, fromRepo(ctx, s.logger, err, "Failed to place order", zap.String("user_id", userID))
	}

	// the order is stored; what follows must not fail the request
	if redeemed {
		if err := s.coupons.Delete(ctx, userID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("Failed to remove redeemed coupon", zap.String("user_id", userID), zap.Error(err))
		}
	}
	points := usecases.PointsForOrder(total)
	if points > 0 {
		if _, err := s.users.AddPoints(ctx, userID, points); err != nil {
			s.logger.Warn("Failed to credit loyalty points", zap.String("user_id", userID), zap.Int("points", points), zap.Error(err))
		}
	}
	if err := s.carts.Clear(ctx, userID); err != nil {
		s.logger.Warn("Failed to clear cart", zap.String("user_id", userID), zap.Error(err))
	}

	s.notify.publish(ctx, EventOrderPlaced, models.OrderPlacedEvent{
		EventType:    EventOrderPlaced,
		OrderID:      record.ID,
		UserID:       userID,
		Total:        total.StringFixed(2),
		ItemCount:    len(lines),
		PointsEarned: points,
		Timestamp:    now,
	})
	s.notify.count(ctx, aws_pkg.MetricOrdersPlaced)
	s.logger.Info("Order placed", zap.String("order_id", record.ID), zap.String("user_id", userID), zap.String("total", total.StringFixed(2)))

	order := usecases.JoinOrdersWithCatalog([]models.OrderRecord{*record}, products)[0]
	return &order, nil
}

// applyCoupon subtracts the user's unexpired coupon from total, never going
// below zero. A coupon that cannot be read is ignored.
func (s *orderServiceImpl) applyCoupon(ctx context.Context, userID string, total decimal.Decimal, now time.Time) (decimal.Decimal, bool) {
	coupon, err := s.coupons.Find(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("Failed to read coupon", zap.String("user_id", userID), zap.Error(err))
		}
		return total, false
	}
	if usecases.IsCouponExpired(coupon.ActivatedAt, now) {
		return total, false
	}
	discounted := total.Sub(coupon.Amount)
	if discounted.IsNegative() {
		discounted = decimal.Zero
	}
	return discounted, true
}
