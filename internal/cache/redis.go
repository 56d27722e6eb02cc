package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/glowbook/salon-api/internal/config"
)

// NewRedis connects the shared client used for request throttling. Redis is
// optional: if the ping fails the server still starts, throttling just
// becomes a no-op.
func NewRedis(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s: %v (throttling disabled)", cfg.RedisAddr, err)
		return nil
	}

	return client
}
