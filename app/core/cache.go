package core

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sproutplan/sproutplan/pkg/types"
)

// NewCache returns the redis token cache when an address is configured and
// an in-process cache otherwise, so single-box deployments need no redis.
func NewCache(cfg RedisConfig) types.Cache {
	if cfg.Addr == "" {
		return NewLocalCache()
	}
	return &redisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

type redisCache struct {
	client redis.UniversalClient
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (c *redisCache) SetEx(ctx context.Context, key, value string, expire time.Duration) error {
	return c.client.Set(ctx, key, value, expire).Err()
}

func (c *redisCache) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

type localCacheItem struct {
	value    string
	expireAt time.Time
}

type LocalCache struct {
	mu    sync.RWMutex
	items map[string]localCacheItem
}

func NewLocalCache() *LocalCache {
	return &LocalCache{items: make(map[string]localCacheItem)}
}

func (c *LocalCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return "", nil
	}
	if time.Now().After(item.expireAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return "", nil
	}
	return item.value, nil
}

func (c *LocalCache) SetEx(ctx context.Context, key, value string, expire time.Duration) error {
	c.mu.Lock()
	c.items[key] = localCacheItem{value: value, expireAt: time.Now().Add(expire)}
	c.mu.Unlock()
	return nil
}

func (c *LocalCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
	return nil
}
