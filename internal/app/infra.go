package app

import (
	"context"

	"integration-service/internal/config"
	"integration-service/internal/kvstore"
	"integration-service/internal/logger"
	"integration-service/internal/redis"
)

type Infra struct {
	Redis *redis.Client
	Store kvstore.Store
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	redisClient, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, err
	}

	logger.Info("redis ready", map[string]any{
		"addr": cfg.RedisAddr,
		"db":   cfg.RedisDB,
	})

	return &Infra{
		Redis: redisClient,
		Store: kvstore.NewRedisStore(redisClient.Client),
	}, nil
}

func (i *Infra) Close() error {
	return i.Redis.Close()
}
