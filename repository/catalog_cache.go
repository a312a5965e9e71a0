package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	aws_pkg "github.com/yashrajoria/shop-backend/pkg/aws"
	"github.com/yashrajoria/shop-backend/models"
	"go.uber.org/zap"
)

const (
	CatalogCachePrefix     = "catalog:v:"
	CatalogCacheVersionKey = "catalog:version"
	DefaultCatalogCacheTTL = 10 * time.Minute
)

// CachedCatalog serves catalog reads from Redis and falls through to the
// wrapped client on a miss. Entries are namespaced by a version counter so
// Invalidate drops all of them with one INCR. Redis failures only cost the
// cache; the catalog is still asked.
type CachedCatalog struct {
	next    CatalogClient
	redis   *redis.Client
	ttl     time.Duration
	metrics aws_pkg.MetricsRecorder
	logger  *zap.Logger
}

func NewCachedCatalog(next CatalogClient, rdb *redis.Client, ttl time.Duration, metrics aws_pkg.MetricsRecorder, logger *zap.Logger) *CachedCatalog {
	if ttl <= 0 {
		ttl = DefaultCatalogCacheTTL
	}
	return &CachedCatalog{next: next, redis: rdb, ttl: ttl, metrics: metrics, logger: logger}
}

func (c *CachedCatalog) Products(ctx context.Context, category string) ([]models.Product, error) {
	if category == "" {
		category = models.CategoryAll
	}
	var products []models.Product
	err := c.cached(ctx, "products:"+category, &products, func() (any, error) {
		return c.next.Products(ctx, category)
	})
	return products, err
}

func (c *CachedCatalog) Product(ctx context.Context, id int) (*models.Product, error) {
	var product *models.Product
	err := c.cached(ctx, fmt.Sprintf("product:%d", id), &product, func() (any, error) {
		return c.next.Product(ctx, id)
	})
	return product, err
}

func (c *CachedCatalog) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := c.cached(ctx, "categories", &categories, func() (any, error) {
		return c.next.Categories(ctx)
	})
	return categories, err
}

// Invalidate drops every cached catalog entry.
func (c *CachedCatalog) Invalidate(ctx context.Context) error {
	v, err := c.redis.Incr(ctx, CatalogCacheVersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	c.logger.Info("Catalog cache invalidated", zap.Int64("new_version", v))
	return nil
}

// cached decodes the entry for name into out, or calls load, stores its
// result and decodes that into out.
func (c *CachedCatalog) cached(ctx context.Context, name string, out any, load func() (any, error)) error {
	key, keyErr := c.key(ctx, name)
	if keyErr == nil {
		raw, err := c.redis.Get(ctx, key).Bytes()
		if err == nil && json.Unmarshal(raw, out) == nil {
			c.record(ctx, aws_pkg.MetricCacheHits)
			return nil
		}
		if err != nil && !errors.Is(err, redis.Nil) {
			c.logger.Warn("Catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
	}
	c.record(ctx, aws_pkg.MetricCacheMisses)

	value, err := load()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal catalog entry: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("copy catalog entry: %w", err)
	}

	if keyErr == nil {
		if err := c.redis.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.logger.Warn("Catalog cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

func (c *CachedCatalog) key(ctx context.Context, name string) (string, error) {
	v, err := c.redis.Get(ctx, CatalogCacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		v, err = 1, c.redis.SetNX(ctx, CatalogCacheVersionKey, 1, 0).Err()
	}
	if err != nil {
		return "", err
	}
	return CatalogCacheKey(v, name), nil
}

// CatalogCacheKey names the cache entry for name at cache version v.
func CatalogCacheKey(v int64, name string) string {
	return fmt.Sprintf("%s%d:%s", CatalogCachePrefix, v, name)
}

func (c *CachedCatalog) record(ctx context.Context, metric string) {
	if c.metrics == nil || !c.metrics.IsEnabled() {
		return
	}
	go func() {
		mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = c.metrics.RecordCount(mctx, metric, map[string]string{"Cache": "catalog"})
	}()
}
