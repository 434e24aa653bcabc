package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores resolutions by normalized key. Misses report found=false.
type Cache interface {
	Get(ctx context.Context, key string) (Resolution, bool, error)
	Set(ctx context.Context, key string, value Resolution) error
}

// Clock returns the current time.
type Clock func() time.Time

type memoryEntry struct {
	value   Resolution
	expires time.Time
}

// MemoryCache is an in-process TTL cache. A zero TTL keeps entries forever.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     Clock
	entries map[string]memoryEntry
}

func NewMemoryCache(ttl time.Duration, clock Clock) *MemoryCache {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryCache{ttl: ttl, now: clock, entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (Resolution, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return Resolution{}, false, nil
	}
	if c.ttl > 0 && !c.now().Before(entry.expires) {
		delete(c.entries, key)
		return Resolution{}, false, nil
	}
	return entry.value, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value Resolution) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{value: value, expires: c.now().Add(c.ttl)}
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// RedisCache shares resolutions between processes. Values are JSON encoded
// and expire through SET EX.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	if prefix == "" {
		prefix = "sellout:catalog:"
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

// OpenRedisCache connects to the Redis server at url and verifies it answers.
func OpenRedisCache(ctx context.Context, url string, ttl time.Duration) (*RedisCache, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisCache(client, "", ttl), nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (Resolution, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Resolution{}, false, nil
	}
	if err != nil {
		return Resolution{}, false, fmt.Errorf("redis get %q: %w", key, err)
	}

	var value Resolution
	if err := json.Unmarshal(data, &value); err != nil {
		return Resolution{}, false, fmt.Errorf("decode cached resolution %q: %w", key, err)
	}
	return value, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value Resolution) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode resolution %q: %w", key, err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
