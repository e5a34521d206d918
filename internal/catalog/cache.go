package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MoaeadAlhosami/STREETWEER/internal/domain"
)

const (
	productsCacheKey      = "storefront:catalog:products"
	productCacheKeyPrefix = "storefront:catalog:product:"
)

// CachedSource is a read-through Redis cache in front of another Source for
// the product list and product detail. Cache failures are logged and the
// underlying source is used directly. Answers the underlying source marks as
// degraded are returned but never cached.
type CachedSource struct {
	next   Source
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedSource wraps next with a cache whose entries live for ttl.
func NewCachedSource(next Source, client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *CachedSource {
	return &CachedSource{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetProducts implements Source.
func (c *CachedSource) GetProducts(ctx context.Context) ([]domain.Product, error) {
	var cached []domain.Product
	if c.load(ctx, productsCacheKey, &cached) {
		return cached, nil
	}

	tracked, degraded := TrackDegraded(ctx)
	products, err := c.next.GetProducts(tracked)
	if err != nil {
		return nil, err
	}
	if degraded() {
		c.skip(ctx, productsCacheKey)
		return products, nil
	}
	c.store(ctx, productsCacheKey, products)
	return products, nil
}

// GetProduct implements Source. Misses are not cached.
func (c *CachedSource) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	key := productCacheKeyPrefix + id

	var cached domain.Product
	if c.load(ctx, key, &cached) {
		return &cached, nil
	}

	tracked, degraded := TrackDegraded(ctx)
	p, err := c.next.GetProduct(tracked, id)
	if err != nil {
		return nil, err
	}
	if degraded() {
		c.skip(ctx, key)
		return p, nil
	}
	c.store(ctx, key, p)
	return p, nil
}

// GetCategories implements Source.
func (c *CachedSource) GetCategories(ctx context.Context) ([]domain.Category, error) {
	return c.next.GetCategories(ctx)
}

// GetBrands implements Source.
func (c *CachedSource) GetBrands(ctx context.Context) ([]domain.Brand, error) {
	return c.next.GetBrands(ctx)
}

// Invalidate drops every cached catalog entry.
func (c *CachedSource) Invalidate(ctx context.Context) error {
	keys := []string{productsCacheKey}
	iter := c.client.Scan(ctx, 0, productCacheKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *CachedSource) load(ctx context.Context, key string, dst any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "catalog cache read failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.logger.WarnContext(ctx, "catalog cache entry corrupt",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}

func (c *CachedSource) skip(ctx context.Context, key string) {
	c.logger.DebugContext(ctx, "degraded catalog answer not cached", slog.String("key", key))
}

func (c *CachedSource) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "catalog cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
