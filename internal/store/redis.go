package store

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "session:"

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func redisKey(session, key string) string {
	return fmt.Sprintf("%s%s:%s", sessionKeyPrefix, session, key)
}

func (s *RedisStore) Get(ctx context.Context, session, key string) (string, error) {
	val, err := s.rdb.Get(ctx, redisKey(session, key)).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, session, key, value string) error {
	// No TTL: session state never expires automatically.
	return s.rdb.Set(ctx, redisKey(session, key), value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, session, key string) error {
	return s.rdb.Del(ctx, redisKey(session, key)).Err()
}
