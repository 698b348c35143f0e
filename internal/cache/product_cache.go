package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/foodhealth/food-health-tracker/internal/food"
)

// ProductCache caches barcode lookups in Redis. Every Redis failure degrades
// to a cache miss so an unavailable Redis never blocks a lookup.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCache connects to Redis and verifies the connection.
func NewProductCache(redisHost, redisPort string, ttl time.Duration) (*ProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", redisHost, redisPort),
		Password:     "", // no password
		DB:           0,  // default DB
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &ProductCache{
		client: client,
		ttl:    ttl,
	}, nil
}

// Get returns the cached product for a barcode, if any.
func (c *ProductCache) Get(ctx context.Context, barcode string) (*food.Product, bool) {
	result := c.client.Get(ctx, productKey(barcode))
	if result.Err() != nil {
		return nil, false
	}

	var product food.Product
	if err := json.Unmarshal([]byte(result.Val()), &product); err != nil {
		return nil, false
	}
	return &product, true
}

// Set stores a product under its barcode with the configured TTL.
func (c *ProductCache) Set(ctx context.Context, barcode string, product *food.Product) {
	data, err := json.Marshal(product)
	if err != nil {
		return
	}
	c.client.Set(ctx, productKey(barcode), data, c.ttl)
}

// Close closes the Redis connection.
func (c *ProductCache) Close() error {
	return c.client.Close()
}

func productKey(barcode string) string {
	return fmt.Sprintf("product:barcode:%s", barcode)
}
