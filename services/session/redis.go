package session

import (
	"context"
	"encoding/json"
	"time"

	"clearcare/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "session:ctx:"

// RedisStore persists session context in Redis with a rolling TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.SessionContext, error) {
	key := sessionKeyPrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return &models.SessionContext{}, nil
	}
	if err != nil {
		return nil, err
	}
	var sc models.SessionContext
	if err := json.Unmarshal([]byte(data), &sc); err != nil {
		return nil, err
	}
	sc.IsReturning = true
	return &sc, nil
}

func (s *RedisStore) Put(ctx context.Context, sessionID string, sc *models.SessionContext) error {
	key := sessionKeyPrefix + sessionID
	sc.UpdatedAt = time.Now().UTC()
	b, err := json.Marshal(sc)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	key := sessionKeyPrefix + sessionID
	return s.client.Del(ctx, key).Err()
}
