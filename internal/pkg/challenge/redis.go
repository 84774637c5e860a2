package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps challenge records in Redis with native TTL expiry.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "challenge:",
	}
}

func (s *RedisStore) key(session string, slot Slot) string {
	return s.prefix + string(slot) + ":" + session
}

// Save writes the record, replacing any previous one for the cell.
func (s *RedisStore) Save(ctx context.Context, session string, slot Slot, rec Record, ttl time.Duration) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, s.key(session, slot), body, ttl).Err()
}

// Get returns the record for the cell, or ErrNotFound when absent or expired.
func (s *RedisStore) Get(ctx context.Context, session string, slot Slot) (*Record, error) {
	body, err := s.client.Get(ctx, s.key(session, slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, err
	}

	return &rec, nil
}
