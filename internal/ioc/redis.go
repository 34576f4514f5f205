package ioc

import (
	"context"
	"fmt"
	"time"

	"coursemanagement/internal/config"
	"coursemanagement/internal/pkg/logger"
	"coursemanagement/internal/service"

	"github.com/go-redis/redis/v8"
)

// InitRedis returns nil when no address is configured.
func InitRedis(cfg *config.Config) (redis.Cmdable, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
	}
	return client, nil
}

func InitProgressStore(client redis.Cmdable, l logger.Logger) service.ProgressStore {
	if client == nil {
		l.Info("keeping import progress in memory")
		return service.NewMemoryProgressStore()
	}
	return service.NewRedisProgressStore(client)
}
