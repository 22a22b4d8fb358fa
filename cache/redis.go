package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists the session entry in Redis. Intended for shared or
// headless deployments (kiosks, fleet devices) where several processes on
// one identity should observe the same cached session.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing Redis client. The entry is written under
// "<prefix>:user"; prefix defaults to "sessionkit".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "sessionkit"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key() string {
	return s.prefix + ":" + Key
}

func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	v, err := s.client.Get(ctx, s.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoEntry
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *RedisStore) Save(ctx context.Context, entry []byte) error {
	return s.client.Set(ctx, s.key(), entry, 0).Err()
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key()).Err()
}
