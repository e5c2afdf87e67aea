// Package redis provides a read-through cache in front of a CatalogPort.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"funnel-metrics-service/internal/config"
	"funnel-metrics-service/internal/logging"
	"funnel-metrics-service/internal/rollup/core/domain"
	"funnel-metrics-service/internal/rollup/core/ports"

	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"
)

const catalogKey = "funnel:catalog:v1"

// Client is the subset of *goredis.Client the cache needs.
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
}

// CatalogCache serves the catalog from Redis and falls back to the wrapped
// port on a miss. Redis failures are logged and never fail the request.
type CatalogCache struct {
	next   ports.CatalogPort
	client Client
	ttl    time.Duration
}

func NewCatalogCache(next ports.CatalogPort, client Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{next: next, client: client, ttl: ttl}
}

var _ ports.CatalogPort = (*CatalogCache)(nil)

func (c *CatalogCache) FetchCatalog(ctx context.Context) (domain.Catalog, error) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	switch {
	case err == nil:
		var catalog domain.Catalog
		decodeErr := json.Unmarshal(raw, &catalog)
		if decodeErr == nil {
			return catalog, nil
		}
		logging.Warn().Err(decodeErr).Str("key", catalogKey).Msg("discarding undecodable cached catalog")
	case errors.Is(err, goredis.Nil):
	default:
		logging.Warn().Err(err).Msg("catalog cache read failed")
	}

	catalog, err := c.next.FetchCatalog(ctx)
	if err != nil {
		return domain.Catalog{}, err
	}

	raw, err = json.Marshal(catalog)
	if err != nil {
		return catalog, nil
	}
	if err := c.client.Set(ctx, catalogKey, raw, c.ttl).Err(); err != nil {
		logging.Warn().Err(err).Msg("catalog cache write failed")
	}
	return catalog, nil
}

// NewClient connects to Redis. It returns nil, nil when cfg.Addr is empty.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
