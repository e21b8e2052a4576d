package config

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

type RedisConfig struct {
	Addr     string
	Password string
}

func NewRedisConfig() *RedisConfig {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	return &RedisConfig{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	}
}

// NewRedisClient connects the snapshot cache used for warm booking-list starts.
func NewRedisClient(lc fx.Lifecycle, config *RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				log.Println("Redis not reachable, booking cache disabled:", err)
				return nil
			}
			log.Println("Connected to Redis")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Closing Redis connection ...")
			return client.Close()
		},
	})
	return client
}
