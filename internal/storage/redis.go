package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client    *redis.Client
	namespace string
}

// NewRedis returns a Store backed by Redis. Keys are namespaced so several
// deployments can share one instance. Entries carry no TTL: the cart must
// survive arbitrarily long between sessions.
func NewRedis(addr, namespace string) Store {
	return &redisStore{
		client:    redis.NewClient(&redis.Options{Addr: addr}),
		namespace: namespace,
	}
}

func (r *redisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("storage: get %q: %w", key, err)
	}
	return value, nil
}

func (r *redisStore) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("storage: set %q: %w", key, err)
	}
	return nil
}

func (r *redisStore) key(k string) string {
	return fmt.Sprintf("%s:%s", r.namespace, k)
}
