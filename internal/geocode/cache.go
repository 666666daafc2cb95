package geocode

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"ridehail/internal/domain/entities"
	"ridehail/internal/geo"
	"ridehail/pkg/utils"
)

const cacheKeyPrefix = "geocode:"

// Store is the part of the Redis client the cache uses. *redis.Client
// satisfies it.
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedResolver memoizes another Resolver in Redis, one entry per geohash
// cell. Lookups go to the cell center, so every rider in a cell shares the
// same label. Redis failures are logged and fall through to the wrapped
// resolver.
type CachedResolver struct {
	next      Resolver
	rdb       Store
	ttl       time.Duration
	precision int
}

func NewCachedResolver(next Resolver, rdb Store, ttl time.Duration, precision int) *CachedResolver {
	if precision <= 0 {
		precision = geo.DefaultPrecision
	}
	return &CachedResolver{
		next:      next,
		rdb:       rdb,
		ttl:       ttl,
		precision: precision,
	}
}

// NewRedisClient connects to addr and verifies the connection with PING.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return rdb, nil
}

func (c *CachedResolver) Resolve(ctx context.Context, loc entities.Location) (string, error) {
	cell := geo.Cell(loc, c.precision)
	key := cacheKeyPrefix + cell

	label, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		return label, nil
	}
	if !errors.Is(err, redis.Nil) {
		log.Printf("[GEOCODE] %s cache read %s failed: %v", utils.LogFields(ctx), key, err)
	}

	target := loc
	if center, ok := geo.CellCenter(cell); ok {
		target = center
	}

	label, err = c.next.Resolve(ctx, target)
	if err != nil {
		return "", err
	}

	if err := c.rdb.Set(ctx, key, label, c.ttl).Err(); err != nil {
		log.Printf("[GEOCODE] %s cache write %s failed: %v", utils.LogFields(ctx), key, err)
	}
	return label, nil
}
