package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/anapaulaelz/final-practicum-project/internal/config"
	"github.com/redis/go-redis/v9"
)

const (
	dashboardKeyPrefix = "inventory:dashboard"
	scanBatchSize      = 100
)

// LatestDashboardKey holds the newest dashboard document.
const LatestDashboardKey = dashboardKeyPrefix + ":latest"

// RunDashboardKey holds the dashboard document of one run.
func RunDashboardKey(runID string) string {
	return fmt.Sprintf("%s:run:%s", dashboardKeyPrefix, runID)
}

// DashboardCache hands the encoded dashboard document to the frontend.
type DashboardCache interface {
	GetLatest(ctx context.Context) ([]byte, bool, error)
	SetLatest(ctx context.Context, runID string, document []byte) error
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

// NewDashboardCache connects to redis when caching is enabled and returns a
// no-op cache otherwise.
func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisDashboardCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func (c *redisDashboardCache) GetLatest(ctx context.Context) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, LatestDashboardKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}
	return payload, true, nil
}

// SetLatest stores the document under the latest key and the run's own key in
// one transaction.
func (c *redisDashboardCache) SetLatest(ctx context.Context, runID string, document []byte) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, LatestDashboardKey, document, c.ttl)
		pipe.Set(ctx, RunDashboardKey(runID), document, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, dashboardKeyPrefix, scanBatchSize)
}

func (n *noopDashboardCache) GetLatest(ctx context.Context) ([]byte, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) SetLatest(ctx context.Context, runID string, document []byte) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(ctx context.Context) error {
	return nil
}
