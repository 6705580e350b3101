package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/neexbeast/travel-recommendation/internal/search"
)

const defaultTTL = time.Hour

// Cache wraps a Redis client and stores search results per catalog version.
// A reload bumps the version, so stale entries are never read and expire on their own.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a Cache with a 1-hour TTL.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client, ttl: defaultTTL}
}

// WithTTL returns a copy of c using ttl. Non-positive values keep the default.
func (c *Cache) WithTTL(ttl time.Duration) *Cache {
	if ttl <= 0 {
		return c
	}
	return &Cache{client: c.client, ttl: ttl}
}

// key returns the Redis key for a query against a catalog version.
func key(version uint64, query string) string {
	return "search:v" + strconv.FormatUint(version, 10) + ":" + strings.ToLower(strings.TrimSpace(query))
}

// Get retrieves a cached search result.
// Returns nil, nil on a cache miss (not an error).
func (c *Cache) Get(ctx context.Context, version uint64, query string) (*search.Result, error) {
	val, err := c.client.Get(ctx, key(version, query)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get for query %q: %w", query, err)
	}

	var res search.Result
	if err := json.Unmarshal([]byte(val), &res); err != nil {
		return nil, fmt.Errorf("unmarshaling cached result for query %q: %w", query, err)
	}

	return &res, nil
}

// Set stores a search result with the configured TTL.
func (c *Cache) Set(ctx context.Context, version uint64, query string, res *search.Result) error {
	if res == nil {
		return nil
	}

	b, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshaling search result for query %q: %w", query, err)
	}

	if err := c.client.Set(ctx, key(version, query), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set for query %q: %w", query, err)
	}

	return nil
}

// Ping checks connectivity to Redis.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
