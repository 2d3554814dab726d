package store

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "tableside:"

// RedisStore is the KV backend for deployments where several kiosk
// processes share one state host. Keys live under a common prefix so
// Clear never touches anything else in the instance.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(key string) ([]byte, bool) {
	v, err := s.client.Get(context.Background(), redisPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return v, true
}

func (s *RedisStore) Set(key string, value []byte) error {
	return s.client.Set(context.Background(), redisPrefix+key, value, 0).Err()
}

func (s *RedisStore) Remove(key string) error {
	return s.client.Del(context.Background(), redisPrefix+key).Err()
}

func (s *RedisStore) Clear() error {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, redisPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("[tableside] redis clear %s: %v", iter.Val(), err)
		}
	}
	return iter.Err()
}
