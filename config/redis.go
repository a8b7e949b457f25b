package config

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dcode-github/luxury_realty/backend/utils"
)

func InitRedis(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	utils.Logger.Infof("Connected to Redis at %s", addr)
	return client, nil
}
