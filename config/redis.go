package config

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis builds the optional Redis client used for identity caching.
// Returns nil when REDIS_ADDR is unset or the server is unreachable; the
// application degrades to database lookups in that case.
func ConnectRedis(cfg *Config) *redis.Client {
	if cfg.RedisAddr == "" {
		slog.Warn("REDIS_ADDR not set, identity caching disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		slog.Error("无法连接 Redis", "error", err)
		return nil
	}

	slog.Info("Redis 连接成功")
	return rdb
}
