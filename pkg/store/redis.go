package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/mkessel/trendmap/pkg/board"
)

// Redis key layout. Trends live in one hash keyed by trend ID; the
// category list and branding are single JSON values.
const (
	redisTrendsKey     = "trendmap:trends"
	redisCategoriesKey = "trendmap:categories"
	redisBrandingKey   = "trendmap:branding"
)

// RedisStore is a Redis-backed curation store for server deployments
// where several instances share one working set.
type RedisStore struct {
	client *redis.Client
}

// RedisConfig holds connection settings for a Redis store.
type RedisConfig struct {
	Addr     string // host:port, e.g. "localhost:6379"
	Password string // optional
	DB       int    // logical database number
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) ListTrends(ctx context.Context) ([]board.Trend, error) {
	entries, err := s.client.HGetAll(ctx, redisTrendsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list trends: %w", err)
	}

	trends := make([]board.Trend, 0, len(entries))
	for id, raw := range entries {
		var t board.Trend
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			return nil, fmt.Errorf("parse trend %s: %w", id, err)
		}
		trends = append(trends, t)
	}
	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].UpdatedAt.After(trends[j].UpdatedAt)
	})
	return trends, nil
}

func (s *RedisStore) GetTrend(ctx context.Context, id string) (*board.Trend, error) {
	raw, err := s.client.HGet(ctx, redisTrendsKey, id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("trend %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get trend %s: %w", id, err)
	}

	var t board.Trend
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return nil, fmt.Errorf("parse trend %s: %w", id, err)
	}
	return &t, nil
}

func (s *RedisStore) SaveTrend(ctx context.Context, trend *board.Trend) error {
	prepareTrend(trend)

	data, err := json.Marshal(trend)
	if err != nil {
		return fmt.Errorf("marshal trend: %w", err)
	}
	if err := s.client.HSet(ctx, redisTrendsKey, trend.ID, data).Err(); err != nil {
		return fmt.Errorf("save trend %s: %w", trend.ID, err)
	}
	return nil
}

func (s *RedisStore) DeleteTrend(ctx context.Context, id string) error {
	removed, err := s.client.HDel(ctx, redisTrendsKey, id).Result()
	if err != nil {
		return fmt.Errorf("delete trend %s: %w", id, err)
	}
	if removed == 0 {
		return fmt.Errorf("trend %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *RedisStore) ReplaceTrends(ctx context.Context, trends []board.Trend) error {
	fields := make(map[string]any, len(trends))
	for i := range trends {
		t := trends[i]
		prepareTrend(&t)
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("marshal trend: %w", err)
		}
		fields[t.ID] = data
	}

	// Swap the whole hash atomically.
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, redisTrendsKey)
	if len(fields) > 0 {
		pipe.HSet(ctx, redisTrendsKey, fields)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("replace trends: %w", err)
	}
	return nil
}

func (s *RedisStore) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.getJSON(ctx, redisCategoriesKey, &categories); err != nil {
		return nil, err
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Order < categories[j].Order
	})
	return categories, nil
}

func (s *RedisStore) SaveCategories(ctx context.Context, categories []Category) error {
	return s.setJSON(ctx, redisCategoriesKey, categories)
}

func (s *RedisStore) GetBranding(ctx context.Context) (*Branding, error) {
	var branding *Branding
	if err := s.getJSON(ctx, redisBrandingKey, &branding); err != nil {
		return nil, err
	}
	return branding, nil
}

func (s *RedisStore) SaveBranding(ctx context.Context, branding *Branding) error {
	return s.setJSON(ctx, redisBrandingKey, branding)
}

func (s *RedisStore) Close() error { return s.client.Close() }

// getJSON loads a JSON value; a missing key leaves v untouched.
func (s *RedisStore) getJSON(ctx context.Context, key string, v any) error {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
