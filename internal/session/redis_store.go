package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	personaKey     = "boq:session:persona"
	uploadCountKey = "boq:session:upload_count"
)

// RedisStore persists the session slot in Redis.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) GetPersona(ctx context.Context) (string, error) {
	v, err := s.client.Get(ctx, personaKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get persona: %w", err)
	}
	return v, nil
}

func (s *RedisStore) SetPersona(ctx context.Context, persona string) error {
	if err := s.client.Set(ctx, personaKey, persona, 0).Err(); err != nil {
		return fmt.Errorf("failed to set persona: %w", err)
	}
	return nil
}

func (s *RedisStore) IncrUploadCount(ctx context.Context) (int64, error) {
	n, err := s.client.Incr(ctx, uploadCountKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to bump upload count: %w", err)
	}
	return n, nil
}
