package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var rdb *redis.Client

var ErrNotInitialized = errors.New("cache not initialized")

type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func Init(cfg Config) error {
	rdb = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb = nil
		return err
	}
	return nil
}

// Set is a no-op when redis is unavailable; caching degrades gracefully.
func Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	return rdb.Set(ctx, key, value, ttl).Err()
}

func Get(ctx context.Context, key string) (string, error) {
	if rdb == nil {
		return "", ErrNotInitialized
	}
	return rdb.Get(ctx, key).Result()
}

func Delete(ctx context.Context, keys ...string) error {
	if rdb == nil || len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}

// DeletePrefix drops every key under prefix, used to invalidate all cached
// status pages after a write.
func DeletePrefix(ctx context.Context, prefix string) error {
	if rdb == nil {
		return nil
	}
	iter := rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return Delete(ctx, keys...)
}
