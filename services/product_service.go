package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/yashrajoria/shop-backend/models"
	"github.com/yashrajoria/shop-backend/outcome"
	"github.com/yashrajoria/shop-backend/repository"
	"github.com/yashrajoria/shop-backend/usecases"
	"go.uber.org/zap"
)

// ProductQuery narrows and orders a product listing. A nil Categories map
// and nil price bounds mean no filtering.
type ProductQuery struct {
	Category   string
	Order      usecases.ProductOrder
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Categories map[string]bool
}

func (q ProductQuery) filtered() bool {
	return q.MinPrice != nil || q.MaxPrice != nil || q.Categories != nil
}

// ProductService feeds the product list, product detail and favourites screens.
type ProductService interface {
	Products(ctx context.Context, userID string, q ProductQuery) outcome.Stream[[]models.Product]
	Product(ctx context.Context, userID string, id int) outcome.Stream[models.Product]
	Categories(ctx context.Context) outcome.Stream[[]string]
	Favourites(ctx context.Context, userID string) outcome.Stream[[]models.Product]
}

type productServiceImpl struct {
	catalog    repository.CatalogClient
	favourites repository.FavouriteRepository
	logger     *zap.Logger
}

func NewProductService(catalog repository.CatalogClient, favourites repository.FavouriteRepository, logger *zap.Logger) ProductService {
	return &productServiceImpl{catalog: catalog, favourites: favourites, logger: logger}
}

func (s *productServiceImpl) Products(ctx context.Context, userID string, q ProductQuery) outcome.Stream[[]models.Product] {
	return outcome.Run(ctx, func(ctx context.Context) ([]models.Product, error) {
		products, err := s.catalog.Products(ctx, q.Category)
		if err != nil {
			return nil, fromRepo(ctx, s.logger, err, "Failed to load products", zap.String("category", q.Category))
		}
		favs, err := s.userFavourites(ctx, userID)
		if err != nil {
			return nil, err
		}

		products = usecases.SetFavouriteFlags(products, favs)
		if q.filtered() {
			minPrice, maxPrice := priceBounds(products, q.MinPrice, q.MaxPrice)
			if q.Categories == nil {
				products = usecases.FilterByPriceRange(products, &minPrice, &maxPrice)
			} else {
				products = usecases.FilterByCategoryAndPrice(products, minPrice, maxPrice, q.Categories)
			}
		}
		return usecases.SortProducts(q.Order, products), nil
	})
}

func (s *productServiceImpl) Product(ctx context.Context, userID string, id int) outcome.Stream[models.Product] {
	return outcome.Run(ctx, func(ctx context.Context) (models.Product, error) {
		p, err := s.catalog.Product(ctx, id)
		if err != nil {
			return models.Product{}, fromRepo(ctx, s.logger, err, "Failed to load product", zap.Int("product_id", id))
		}
		favs, err := s.userFavourites(ctx, userID)
		if err != nil {
			return models.Product{}, err
		}
		return usecases.SetFavouriteFlags([]models.Product{*p}, favs)[0], nil
	})
}

func (s *productServiceImpl) Categories(ctx context.Context) outcome.Stream[[]string] {
	return outcome.Run(ctx, func(ctx context.Context) ([]string, error) {
		categories, err := s.catalog.Categories(ctx)
		if err != nil {
			return nil, fromRepo(ctx, s.logger, err, "Failed to load categories")
		}
		return categories, nil
	})
}

func (s *productServiceImpl) Favourites(ctx context.Context, userID string) outcome.Stream[[]models.Product] {
	return outcome.Run(ctx, func(ctx context.Context) ([]models.Product, error) {
		products, err := s.catalog.Products(ctx, models.CategoryAll)
		if err != nil {
			return nil, fromRepo(ctx, s.logger, err, "Failed to load products")
		}
		favs, err := s.userFavourites(ctx, userID)
		if err != nil {
			return nil, err
		}
		return usecases.FilterToFavourites(products, favs), nil
	})
}

// userFavourites returns nothing for anonymous callers.
func (s *productServiceImpl) userFavourites(ctx context.Context, userID string) ([]models.FavouriteRecord, error) {
	if userID == "" {
		return nil, nil
	}
	favs, err := s.favourites.List(ctx, userID)
	if err != nil {
		return nil, fromRepo(ctx, s.logger, err, "Failed to load favourites", zap.String("user_id", userID))
	}
	return favs, nil
}

// priceBounds fills a missing lower bound with zero and a missing upper
// bound with the highest price on offer.
func priceBounds(products []models.Product, minPrice, maxPrice *decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	lo, hi := decimal.Zero, decimal.Zero
	if minPrice != nil {
		lo = *minPrice
	}
	if maxPrice != nil {
		return lo, *maxPrice
	}
	for _, p := range products {
		if p.Price.GreaterThan(hi) {
			hi = p.Price
		}
	}
	return lo, hi
}
