package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nutriflow/backend/config"
)

// NewRedisClient creates a Redis client used as a read-through cache for
// external food lookups. Returns (nil, nil) when no Redis host is
// configured: the cache is optional and callers treat a nil client as
// "caching disabled".
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisHost == "" {
		log.Printf("Redis not configured, lookup caching disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("Successfully connected to Redis at %s:%s", cfg.RedisHost, cfg.RedisPort)
	return client, nil
}
