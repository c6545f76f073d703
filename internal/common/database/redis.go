// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"niche-workers/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// NewRedis opens the analysis cache connection and verifies it with PING.
// The caller owns the returned client.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s failed: %w", cfg.Address, err)
	}
	return rdb, nil
}
