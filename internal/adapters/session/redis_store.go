package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carelinkhq/patient-portal/internal/domain/entities"
	"github.com/carelinkhq/patient-portal/internal/domain/repositories"
	redisclient "github.com/carelinkhq/patient-portal/internal/infrastructure/clients/redis"
)

// Key layout: the bearer token lives under its own fixed-prefix key so the
// route guard reads a single string; the full session record is a separate
// namespaced JSON document.
const (
	tokenKeyPrefix   = "token:"
	sessionKeyPrefix = "portal:session:"
)

// RedisStore persists sessions in Redis with a TTL.
type RedisStore struct {
	client *redisclient.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session repository.
func NewRedisStore(client *redisclient.Client, ttl time.Duration) repositories.SessionRepository {
	return &RedisStore{client: client, ttl: ttl}
}

// Save stores the session record and mirrors its token.
func (s *RedisStore) Save(ctx context.Context, sess *entities.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	rdb := s.client.Client()
	if err := rdb.Set(ctx, sessionKeyPrefix+sess.ID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if err := rdb.Set(ctx, tokenKeyPrefix+sess.ID, sess.Token, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session token: %w", err)
	}
	return nil
}

// FindByID returns the session record, or nil when absent.
func (s *RedisStore) FindByID(ctx context.Context, id string) (*entities.Session, error) {
	raw, err := s.client.Client().Get(ctx, sessionKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var sess entities.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &sess, nil
}

// Token returns the stored bearer token, or "" when absent.
func (s *RedisStore) Token(ctx context.Context, id string) (string, error) {
	token, err := s.client.Client().Get(ctx, tokenKeyPrefix+id).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session token: %w", err)
	}
	return token, nil
}

// Delete removes the session record and its token.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Client().Del(ctx, sessionKeyPrefix+id, tokenKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
