package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds connection settings for the redis driver.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore shares the cache between machines through redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to redis and verifies the connection.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", cfg.Addr, err)
	}

	return &RedisStore{client: client}, nil
}

// Remember implements Store.
func (s *RedisStore) Remember(ctx context.Context, key string, ttl time.Duration, producer Producer) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	data, err = producer(ctx)
	if err != nil {
		return nil, err
	}

	if ttl <= 0 {
		ttl = defaultExpiry
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return nil, fmt.Errorf("set %s: %w", key, err)
	}
	return data, nil
}

// Forget implements Store.
func (s *RedisStore) Forget(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Close implements Store.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
