package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stocksuperhero/dashboard/internal/model"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore keeps sessions as JSON values under prefix+id with a sliding TTL
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore creates a new Redis-backed session store
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}

// Get loads a session
func (r *RedisStore) Get(ctx context.Context, id string) (*model.Session, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		r.logger.Error("failed to get session", zap.Error(err), zap.String("session_id", id))
		return nil, err
	}

	var s model.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	s.Filters = model.NewFilterState(s.Filters.Sectors, s.Filters.Industries, s.Filters.ClassificationTags)

	return &s, nil
}

// Save stores a session and resets its TTL
func (r *RedisStore) Save(ctx context.Context, s *model.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", s.ID, err)
	}

	if err := r.client.Set(ctx, r.key(s.ID), data, r.ttl).Err(); err != nil {
		r.logger.Error("failed to save session", zap.Error(err), zap.String("session_id", s.ID))
		return err
	}

	return nil
}

// Delete removes a session
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		r.logger.Error("failed to delete session", zap.Error(err), zap.String("session_id", id))
		return err
	}
	return nil
}
