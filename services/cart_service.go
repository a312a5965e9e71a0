package services

import (
	"context"

	"github.com/yashrajoria/shop-backend/models"
	"github.com/yashrajoria/shop-backend/outcome"
	aws_pkg "github.com/yashrajoria/shop-backend/pkg/aws"
	"github.com/yashrajoria/shop-backend/repository"
	"github.com/yashrajoria/shop-backend/usecases"
	"go.uber.org/zap"
)

// MaxCartQuantity caps a single cart line.
const MaxCartQuantity = 99

type CartService interface {
	Lines(ctx context.Context, userID string) outcome.Stream[models.CartView]
	// WatchLines re-emits the cart every time it changes until ctx ends.
	WatchLines(ctx context.Context, userID string) (outcome.Stream[models.CartView], *ServiceError)
	Add(ctx context.Context, userID string, req models.AddToCartRequest) (*models.CartRecord, *ServiceError)
	SetQuantity(ctx context.Context, userID string, productID, quantity int) (*models.CartRecord, *ServiceError)
	Remove(ctx context.Context, userID string, productID int) *ServiceError
}

type cartServiceImpl struct {
	carts   repository.CartRepository
	catalog repository.CatalogClient
	notify  notifier
	logger  *zap.Logger
}

func NewCartService(carts repository.CartRepository, catalog repository.CatalogClient, metrics aws_pkg.MetricsRecorder, logger *zap.Logger) CartService {
	return &cartServiceImpl{
		carts:   carts,
		catalog: catalog,
		notify:  notifier{metrics: metrics, logger: logger},
		logger:  logger,
	}
}

func (s *cartServiceImpl) Lines(ctx context.Context, userID string) outcome.Stream[models.CartView] {
	return outcome.Run(ctx, func(ctx context.Context) (models.CartView, error) {
		return s.load(ctx, userID)
	})
}

func (s *cartServiceImpl) WatchLines(ctx context.Context, userID string) (outcome.Stream[models.CartView], *ServiceError) {
	changes, err := s.carts.Changes(ctx, userID)
	if err != nil {
		return nil, fromRepo(ctx, s.logger, err, "Failed to watch cart", zap.String("user_id", userID))
	}
	return outcome.Watch(ctx, changes, func(ctx context.Context) (models.CartView, error) {
		return s.load(ctx, userID)
	}), nil
}

func (s *cartServiceImpl) load(ctx context.Context, userID string) (models.CartView, error) {
	records, err := s.carts.List(ctx, userID)
	if err != nil {
		return models.CartView{}, fromRepo(ctx, s.logger, err, "Failed to load cart", zap.String("user_id", userID))
	}
	if len(records) == 0 {
		return newCartView(nil), nil
	}
	products, err := s.catalog.Products(ctx, models.CategoryAll)
	if err != nil {
		return models.CartView{}, fromRepo(ctx, s.logger, err, "Failed to load products")
	}
	return newCartView(usecases.JoinCartWithCatalog(records, products)), nil
}

func newCartView(lines []models.CartLineItem) models.CartView {
	if lines == nil {
		lines = []models.CartLineItem{}
	}
	total := usecases.CartTotal(lines)
	return models.CartView{Items: lines, Total: total, DisplayTotal: models.FormatPrice(total)}
}

func (s *cartServiceImpl) Add(ctx context.Context, userID string, req models.AddToCartRequest) (*models.CartRecord, *ServiceError) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if req.ProductID <= 0 || quantity < 1 || quantity > MaxCartQuantity {
		return nil, badRequest("Invalid product or quantity")
	}
	if _, err := s.catalog.Product(ctx, req.ProductID); err != nil {
		return nil, fromRepo(ctx, s.logger, err, "Failed to load product", zap.Int("product_id", req.ProductID))
	}

	rec, err := s.carts.Add(ctx, userID, req.ProductID, quantity)
	if err != nil {
		return nil, fromRepo(ctx, s.logger, err, "Failed to add to cart", zap.String("user_id", userID))
	}
	if rec.Quantity > MaxCartQuantity {
		if rec, err = s.carts.SetQuantity(ctx, userID, req.ProductID, MaxCartQuantity); err != nil {
			return nil, fromRepo(ctx, s.logger, err, "Failed to add to cart", zap.String("user_id", userID))
		}
	}
	s.notify.count(ctx, aws_pkg.MetricCartUpdates)
	return rec, nil
}

func (s *cartServiceImpl) SetQuantity(ctx context.Context, userID string, productID, quantity int) (*models.CartRecord, *ServiceError) {
	if quantity < 1 || quantity > MaxCartQuantity {
		return nil, badRequest("Quantity must be between 1 and 99")
	}
	rec, err := s.carts.SetQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, fromRepo(ctx, s.logger, err, "Failed to update cart", zap.String("user_id", userID))
	}
	s.notify.count(ctx, aws_pkg.MetricCartUpdates)
	return rec, nil
}

func (s *cartServiceImpl) Remove(ctx context.Context, userID string, productID int) *ServiceError {
	if err := s.carts.Remove(ctx, userID, productID); err != nil {
		return fromRepo(ctx, s.logger, err, "Failed to remove from cart", zap.String("user_id", userID))
	}
	s.notify.count(ctx, aws_pkg.MetricCartUpdates)
	return nil
}
