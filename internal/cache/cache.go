package cache

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Client wraps redis for response caching. The cache is strictly an
// optimization: every method degrades to a pass-through when redis is not
// configured or a command fails, so cache outages cost latency, never
// correctness.
type Client struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// New creates a cache client. rdb may be nil to run without a cache.
func New(rdb *redis.Client, logger *zap.Logger) *Client {
	return &Client{rdb: rdb, logger: logger}
}

// Key builds a cache key from a route prefix, the request path and the
// query parameters, sorted so equivalent requests share an entry.
func Key(prefix, path string, query url.Values) string {
	if len(query) == 0 {
		return prefix + ":" + path
	}

	names := make([]string, 0, len(query))
	for name := range query {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte(':')
	b.WriteString(path)
	b.WriteByte('?')
	for i, name := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(strings.Join(query[name], ","))
	}
	return b.String()
}

// Get returns the cached payload for key, or false on a miss or error.
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Set stores a payload under key with the given TTL. Entries expire without
// explicit invalidation, bounding staleness.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidatePrefix deletes every key starting with any of the prefixes.
// Called after mutations to departments, doctors, appointments, treatments
// and availability so cached reads never outlive a commit by more than the
// invalidation round-trip.
func (c *Client) InvalidatePrefix(ctx context.Context, prefixes ...string) {
	if c == nil || c.rdb == nil {
		return
	}
	for _, prefix := range prefixes {
		keys, err := c.rdb.Keys(ctx, prefix+"*").Result()
		if err != nil {
			c.logger.Warn("cache invalidation scan failed", zap.String("prefix", prefix), zap.Error(err))
			continue
		}
		if len(keys) == 0 {
			continue
		}
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			c.logger.Warn("cache invalidation delete failed", zap.String("prefix", prefix), zap.Error(err))
		}
	}
}
