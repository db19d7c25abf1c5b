package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/evolve-backend/internal/models"
	"github.com/AnshRaj112/evolve-backend/internal/wellbeing"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached data
	CacheKeyPrefix = "cache:"
	// DefaultInsightsTTL bounds how stale a weekly report can be.
	DefaultInsightsTTL = time.Hour
)

// WeeklyInsights is a weekly trend report together with how it was produced.
type WeeklyInsights struct {
	Trend   models.WeeklyTrend `json:"trend"`
	Entries int                `json:"entries"`
	Source  wellbeing.Source   `json:"source"`
}

// InsightsCache stores the per-user weekly trend report.
type InsightsCache interface {
	GetInsights(ctx context.Context, userID uuid.UUID) (*WeeklyInsights, bool, error)
	SetInsights(ctx context.Context, userID uuid.UUID, insights WeeklyInsights) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// CacheKey generates a cache key for a specific resource
func CacheKey(resource string, identifier string) string {
	return fmt.Sprintf("%s:%s", resource, identifier)
}

func insightsKey(userID uuid.UUID) string {
	return CacheKeyPrefix + CacheKey("insights:weekly", userID.String())
}

// RedisInsightsCache stores reports as JSON strings under cache:insights:weekly:<id>.
type RedisInsightsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisInsightsCache(client *redis.Client, ttl time.Duration) *RedisInsightsCache {
	if ttl <= 0 {
		ttl = DefaultInsightsTTL
	}
	return &RedisInsightsCache{client: client, ttl: ttl}
}

func (c *RedisInsightsCache) GetInsights(ctx context.Context, userID uuid.UUID) (*WeeklyInsights, bool, error) {
	val, err := c.client.Get(ctx, insightsKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var insights WeeklyInsights
	if err := json.Unmarshal([]byte(val), &insights); err != nil {
		return nil, false, err
	}
	return &insights, true, nil
}

func (c *RedisInsightsCache) SetInsights(ctx context.Context, userID uuid.UUID, insights WeeklyInsights) error {
	data, err := json.Marshal(insights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, insightsKey(userID), data, c.ttl).Err()
}

func (c *RedisInsightsCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return c.client.Del(ctx, insightsKey(userID)).Err()
}

type cachedInsights struct {
	insights  WeeklyInsights
	expiresAt time.Time
}

// MemoryInsightsCache is the single-process InsightsCache used with the memory store.
type MemoryInsightsCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[uuid.UUID]cachedInsights
	now   func() time.Time
}

func NewMemoryInsightsCache(ttl time.Duration) *MemoryInsightsCache {
	if ttl <= 0 {
		ttl = DefaultInsightsTTL
	}
	return &MemoryInsightsCache{ttl: ttl, items: make(map[uuid.UUID]cachedInsights), now: time.Now}
}

func (c *MemoryInsightsCache) GetInsights(_ context.Context, userID uuid.UUID) (*WeeklyInsights, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[userID]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(item.expiresAt) {
		delete(c.items, userID)
		return nil, false, nil
	}
	insights := item.insights
	return &insights, true, nil
}

func (c *MemoryInsightsCache) SetInsights(_ context.Context, userID uuid.UUID, insights WeeklyInsights) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[userID] = cachedInsights{insights: insights, expiresAt: c.now().Add(c.ttl)}
	return nil
}

func (c *MemoryInsightsCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, userID)
	return nil
}
