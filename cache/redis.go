package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"photoshare-api/config"
	"photoshare-api/logging"
)

const keyPrefix = "photoshare:"

var (
	// ErrCacheDisabled is returned when cache operations are attempted but cache is disabled
	ErrCacheDisabled = errors.New("cache is disabled")
	// ErrCacheMiss is returned by GetJSON when the key does not exist
	ErrCacheMiss = errors.New("cache miss")
)

// Cache wraps a Redis client. A nil *Cache is valid and behaves as a
// disabled cache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a new Redis cache client
func New(cfg *config.RedisConfig) (*Cache, error) {
	if !cfg.Enabled {
		logging.GetLogger().Info("Redis cache disabled")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.GetLogger().Info("Redis connection established")

	return &Cache{client: client, ttl: cfg.CacheTTL}, nil
}

func (c *Cache) namespaceKey(key string) string {
	return keyPrefix + key
}

// GetJSON loads the value stored at key into dest.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	raw, err := c.client.Get(ctx, c.namespaceKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// SetJSON stores value at key with the configured TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.namespaceKey(key), raw, c.ttl).Err()
}

// Incr atomically increments the counter at key. Counters never expire.
func (c *Cache) Incr(ctx context.Context, key string) (int64, error) {
	if c == nil || c.client == nil {
		return 0, ErrCacheDisabled
	}
	return c.client.Incr(ctx, c.namespaceKey(key)).Result()
}

// Delete removes keys from cache
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	if len(keys) == 0 {
		return nil
	}
	namespaced := make([]string, len(keys))
	for i, key := range keys {
		namespaced[i] = c.namespaceKey(key)
	}
	return c.client.Del(ctx, namespaced...).Err()
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Health checks Redis health
func (c *Cache) Health(ctx context.Context) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	return c.client.Ping(ctx).Err()
}
