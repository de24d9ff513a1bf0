package database

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisClient backs the rate-limit counters. It is only opened when rate
// limiting is enabled.
type RedisClient struct{ *redis.Client }

// NewRedis creates a client for the limiter store. No connection is made
// until the first command; call Ping to fail fast at startup.
func NewRedis(addr, pass string, db int) *RedisClient {
	return &RedisClient{redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

// Ping checks that the limiter store is reachable
func (c *RedisClient) Ping(ctx context.Context) error { return c.Client.Ping(ctx).Err() }
