package services

import (
	"context"

	"github.com/yashrajoria/shop-backend/models"
	"github.com/yashrajoria/shop-backend/repository"
	"go.uber.org/zap"
)

type FavouriteService interface {
	Add(ctx context.Context, userID string, productID int) (*models.FavouriteRecord, *ServiceError)
	Remove(ctx context.Context, userID string, productID int) *ServiceError
}

type favouriteServiceImpl struct {
	catalog    repository.CatalogClient
	favourites repository.FavouriteRepository
	logger     *zap.Logger
}

func NewFavouriteService(catalog repository.CatalogClient, favourites repository.FavouriteRepository, logger *zap.Logger) FavouriteService {
	return &favouriteServiceImpl{catalog: catalog, favourites: favourites, logger: logger}
}

// Add marks a catalog product as favourite. Unknown products are rejected.
func (s *favouriteServiceImpl) Add(ctx context.Context, userID string, productID int) (*models.FavouriteRecord, *ServiceError) {
	if productID <= 0 {
		return nil, badRequest("Invalid product ID")
	}
	if _, err := s.catalog.Product(ctx, productID); err != nil {
		return nil, fromRepo(ctx, s.logger, err, "Failed to load product", zap.Int("product_id", productID))
	}
	fav, err := s.favourites.Add(ctx, userID, productID)
	if err != nil {
		return nil, fromRepo(ctx, s.logger, err, "Failed to add favourite", zap.String("user_id", userID))
	}
	return fav, nil
}

func (s *favouriteServiceImpl) Remove(ctx context.Context, userID string, productID int) *ServiceError {
	if err := s.favourites.Remove(ctx, userID, productID); err != nil {
		return fromRepo(ctx, s.logger, err, "Failed to remove favourite", zap.String("user_id", userID))
	}
	return nil
}
