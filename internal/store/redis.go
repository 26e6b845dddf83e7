package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

// RedisKV stores values as plain Redis strings.
type RedisKV struct {
	client *redis.Client
	tracer trace.Tracer
}

func NewRedisKV(client *redis.Client, tracer trace.Tracer) *RedisKV {
	return &RedisKV{client: client, tracer: tracer}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	ctx, span := r.tracer.Start(ctx, "redis-kv.get")
	defer span.End()

	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	ctx, span := r.tracer.Start(ctx, "redis-kv.set")
	defer span.End()

	return r.client.Set(ctx, key, value, 0).Err()
}
