package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/shop-reviews/internal/config"
)

const productRatingTTL = 10 * time.Minute

// Redis wraps the go-redis client and exposes the product rating cache.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// SetProductRating caches the freshly recomputed aggregate for a product.
// A nil rating means the product has no active ratings; the cached entry
// is dropped so readers fall back to the database NULL.
func (r *Redis) SetProductRating(ctx context.Context, productID int64, rating *float64) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	key := productRatingKey(productID)
	if rating == nil {
		return r.Client.Del(ctx, key).Err()
	}
	return r.Client.Set(ctx, key, strconv.FormatFloat(*rating, 'f', -1, 64), productRatingTTL).Err()
}

// GetProductRating returns the cached aggregate, reporting a miss when the
// key is absent or unreadable.
func (r *Redis) GetProductRating(ctx context.Context, productID int64) (float64, bool) {
	if r == nil || r.Client == nil {
		return 0, false
	}
	val, err := r.Client.Get(ctx, productRatingKey(productID)).Result()
	if err != nil {
		return 0, false
	}
	rating, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return rating, true
}

func productRatingKey(productID int64) string {
	return fmt.Sprintf("product:%d:rating", productID)
}
