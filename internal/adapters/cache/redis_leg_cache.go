package cache

import (
	"context"
	"eld-log-service/internal/domain"
	"eld-log-service/internal/platform/obs"
	"eld-log-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLegCache stores routed legs as JSON under a key built from the
// endpoint coordinates rounded to 5 decimals (about 1 m).
type RedisLegCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisLegCache(client *redis.Client, ttl time.Duration) *RedisLegCache {
	return &RedisLegCache{client: client, ttl: ttl, prefix: "eld:leg:"}
}

func (c *RedisLegCache) key(from, to domain.Coordinates) string {
	return fmt.Sprintf("%s%.5f,%.5f;%.5f,%.5f", c.prefix, from.Lon, from.Lat, to.Lon, to.Lat)
}

// Fetch a cached leg. ok is false on a miss.
func (c *RedisLegCache) Get(ctx context.Context, from, to domain.Coordinates) (_ ports.Leg, _ bool, err error) {
	defer obs.Time(ctx, "leg.cache.Get")(&err)

	if c.client == nil {
		return ports.Leg{}, false, errors.New("leg cache: client is nil")
	}

	raw, err := c.client.Get(ctx, c.key(from, to)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.Leg{}, false, nil
	}
	if err != nil {
		return ports.Leg{}, false, fmt.Errorf("get leg cache: %w", err)
	}

	var leg ports.Leg
	if err := json.Unmarshal(raw, &leg); err != nil {
		return ports.Leg{}, false, fmt.Errorf("get leg cache: decode: %w", err)
	}

	return leg, true, nil
}

// Store a leg with the configured TTL (0 keeps it forever).
func (c *RedisLegCache) Put(ctx context.Context, from, to domain.Coordinates, leg ports.Leg) error {
	if c.client == nil {
		return errors.New("leg cache: client is nil")
	}

	raw, err := json.Marshal(leg)
	if err != nil {
		return fmt.Errorf("put leg cache: encode: %w", err)
	}

	if err := c.client.Set(ctx, c.key(from, to), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("put leg cache: %w", err)
	}

	return nil
}
