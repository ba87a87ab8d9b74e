package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const stateKeyPrefix = "state:"

type redisStateRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStateRepository(client *redis.Client, ttl time.Duration) StateRepository {
	return &redisStateRepository{client: client, ttl: ttl}
}

func stateKey(namespace, key string) string {
	return stateKeyPrefix + namespace + ":" + key
}

func (r *redisStateRepository) Get(ctx context.Context, namespace, key string) (string, error) {
	v, err := r.client.Get(ctx, stateKey(namespace, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrStateNotFound
	}
	return v, err
}

func (r *redisStateRepository) Set(ctx context.Context, namespace, key, value string) error {
	return r.client.Set(ctx, stateKey(namespace, key), value, r.ttl).Err()
}

func (r *redisStateRepository) Delete(ctx context.Context, namespace string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = stateKey(namespace, k)
	}
	return r.client.Del(ctx, full...).Err()
}

func (r *redisStateRepository) Incr(ctx context.Context, namespace, key string) (int64, error) {
	k := stateKey(namespace, key)
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
