package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frahmantamala/marketplace-storefront/internal"
	"github.com/redis/go-redis/v9"
)

// RedisKV keeps each slice as a plain string value under prefix+key.
type RedisKV struct {
	rdb       *redis.Client
	prefix    string
	opTimeout time.Duration
}

func NewRedisKV(rdb *redis.Client, prefix string, opTimeout time.Duration) *RedisKV {
	return &RedisKV{rdb: rdb, prefix: prefix, opTimeout: opTimeout}
}

// ConnectRedis builds a client and verifies it with a ping.
func ConnectRedis(ctx context.Context, cfg internal.RedisConfig, opTimeout time.Duration) (*RedisKV, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := internal.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisKV(rdb, cfg.Prefix, opTimeout), nil
}

func (r *RedisKV) key(k string) string {
	return r.prefix + k
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := internal.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	val, err := r.rdb.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get slice %s: %w", key, err)
	}
	return val, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := internal.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	if err := r.rdb.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("set slice %s: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	ctx, cancel := internal.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	return r.rdb.Del(ctx, r.key(key)).Err()
}

// Clear deletes only the keys under this store's prefix.
func (r *RedisKV) Clear(ctx context.Context) error {
	ctx, cancel := internal.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	iter := r.rdb.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan %s*: %w", r.prefix, err)
	}
	if len(keys) == 0 {
		return nil
	}
	return r.rdb.Del(ctx, keys...).Err()
}

func (r *RedisKV) Close() error {
	return r.rdb.Close()
}
