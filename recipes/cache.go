package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache stores fetched recipes by id.
type Cache interface {
	Get(ctx context.Context, id string) (Recipe, bool, error)
	Set(ctx context.Context, id string, r Recipe) error
}

// CachingProvider wraps a Provider with a Cache. Only successful fetches are cached;
// not-found and transient failures always go back to the wrapped provider.
type CachingProvider struct {
	next  Provider
	cache Cache
}

// NewCachingProvider returns a Provider that consults cache before next.
func NewCachingProvider(next Provider, cache Cache) *CachingProvider {
	return &CachingProvider{next: next, cache: cache}
}

// Fetch returns a cached recipe when present, otherwise fetches and stores it.
// Cache failures are logged and treated as a miss.
func (p *CachingProvider) Fetch(ctx context.Context, id string) (Recipe, error) {
	if r, ok, err := p.cache.Get(ctx, id); err != nil {
		slog.Warn("CACHE: lookup failed, falling through", "recipe_id", id, "error", err)
	} else if ok {
		return r, nil
	}

	r, err := p.next.Fetch(ctx, id)
	if err != nil {
		return Recipe{}, err
	}

	if err := p.cache.Set(ctx, id, r); err != nil {
		slog.Warn("CACHE: store failed", "recipe_id", id, "error", err)
	}
	return r, nil
}

type memoryEntry struct {
	recipe    Recipe
	expiresAt time.Time
}

// MemoryCache is a process-local Cache with a fixed TTL. A zero TTL never expires.
type MemoryCache struct {
	ttl   time.Duration
	now   func() time.Time
	mu    sync.RWMutex
	store map[string]memoryEntry
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:   ttl,
		now:   time.Now,
		store: make(map[string]memoryEntry),
	}
}

func (c *MemoryCache) Get(ctx context.Context, id string) (Recipe, bool, error) {
	c.mu.RLock()
	entry, ok := c.store[id]
	c.mu.RUnlock()
	if !ok {
		return Recipe{}, false, nil
	}
	if c.expired(entry) {
		c.mu.Lock()
		// a concurrent Set may have refreshed the entry since the read lock was released
		if current, ok := c.store[id]; ok && c.expired(current) {
			delete(c.store, id)
		}
		c.mu.Unlock()
		return Recipe{}, false, nil
	}
	return entry.recipe, true, nil
}

func (c *MemoryCache) expired(e memoryEntry) bool {
	return c.ttl > 0 && c.now().After(e.expiresAt)
}

func (c *MemoryCache) Set(ctx context.Context, id string, r Recipe) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[id] = memoryEntry{recipe: r, expiresAt: c.now().Add(c.ttl)}
	return nil
}

// Len returns the number of entries currently held, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// RedisCache stores recipes as JSON values under a key prefix.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed Cache. A zero TTL stores keys without expiry.
func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	if prefix == "" {
		prefix = "mealcart:recipe:"
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) key(id string) string { return c.prefix + id }

func (c *RedisCache) Get(ctx context.Context, id string) (Recipe, bool, error) {
	b, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Recipe{}, false, nil
	}
	if err != nil {
		return Recipe{}, false, fmt.Errorf("redis get: %w", err)
	}
	var r Recipe
	if err := json.Unmarshal(b, &r); err != nil {
		return Recipe{}, false, fmt.Errorf("decode cached recipe: %w", err)
	}
	return r, true, nil
}

func (c *RedisCache) Set(ctx context.Context, id string, r Recipe) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode recipe: %w", err)
	}
	if err := c.client.Set(ctx, c.key(id), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
