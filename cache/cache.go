package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache is a string key-value cache with optional expiry. Get returns "" and a nil error
// when the key does not exist.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context, pattern string) error
}

var errNoClient = errors.New("Redis client is not initialized")

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new RedisCache instance, ensuring that client is not nil.
func NewRedisCache(client *redis.Client) (*RedisCache, error) {
	if client == nil {
		return nil, errNoClient
	}
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if c.client == nil {
		return errNoClient
	}
	return c.client.Del(ctx, key).Err()
}

func (c *RedisCache) DeleteAll(ctx context.Context, pattern string) error {
	if c.client == nil {
		return errNoClient
	}
	// SCAN rather than KEYS so large keyspaces don't block the server
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if c.client == nil {
		return errNoClient
	}
	return c.client.Set(ctx, key, value, expiration).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	if c.client == nil {
		return "", errNoClient
	}
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil // key does not exist
	}
	return val, err
}
