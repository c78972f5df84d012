package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shelfmate/book-recommendation-service/internal/domain"
)

const defaultTTL = 10 * time.Minute

// Cache stores computed recommendation lists in Redis, keyed by the
// title query, strategy, and requested count. The engine is
// deterministic over an immutable catalog, so entries only go stale
// across restarts with new data; the TTL is a safety net.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func buildKey(title, strategy string, n int) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(title)), " ")
	return fmt.Sprintf("rec:title:%s:strategy:%s:limit:%d", normalized, strategy, n)
}

// Get returns cached recommendations and whether the key was present.
func (c *Cache) Get(ctx context.Context, title, strategy string, n int) ([]domain.ScoredBook, bool, error) {
	key := buildKey(title, strategy, n)
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get recommendations from cache: %w", err)
	}

	var recs []domain.ScoredBook
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal recommendations %s: %w", key, err)
	}
	return recs, true, nil
}

// Set stores recommendations under the query key.
func (c *Cache) Set(ctx context.Context, title, strategy string, n int, recs []domain.ScoredBook) error {
	key := buildKey(title, strategy, n)
	val, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set recommendations in cache: %w", err)
	}
	return nil
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
