package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightdesk/config"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/redis/go-redis/v9"
)

const idempotencyPending = "PROCESSING"

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetFlights returns nil, nil on a cache miss.
func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey()).Err()
}

// ClaimIdempotencyKey marks key as in progress. It returns false when the key
// was already claimed, either by a finished request or one still running.
func (c *RedisCache) ClaimIdempotencyKey(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, idempotencyKey(key), idempotencyPending, ttl).Result()
}

// IdempotentResponse returns the stored response for key. done is false while
// the original request is still in flight or when nothing is stored.
func (c *RedisCache) IdempotentResponse(ctx context.Context, key string) (payload []byte, done bool, err error) {
	data, err := c.client.Get(ctx, idempotencyKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if string(data) == idempotencyPending {
		return nil, false, nil
	}
	return data, true, nil
}

func (c *RedisCache) StoreIdempotentResponse(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, idempotencyKey(key), payload, ttl).Err()
}

// ReleaseIdempotencyKey drops a claim so the client may retry, used when the
// request failed before producing a response worth replaying.
func (c *RedisCache) ReleaseIdempotencyKey(ctx context.Context, key string) error {
	return c.client.Del(ctx, idempotencyKey(key)).Err()
}

func flightsKey() string {
	return "cache:flights"
}

func idempotencyKey(key string) string {
	return fmt.Sprintf("idempotency:booking:%s", key)
}
