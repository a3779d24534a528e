// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// # Redis

// RedisCache removes list-view keys from a shared Redis.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache constructs a new [RedisCache].
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

// Remove deletes key. Removing a missing key is not an error.
func (c *RedisCache) Remove(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("book: redis del %q: %w", key, err)
	}
	return nil
}

// # Memory

// MemoryCache is a process-local key-value cache.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemoryCache constructs an empty [MemoryCache].
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]byte)}
}

// Remove deletes key.
func (c *MemoryCache) Remove(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}
