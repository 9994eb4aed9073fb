package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenStore is the allow-list of issued access tokens. A token whose key is
// missing is treated as revoked.
type TokenStore interface {
	Store(ctx context.Context, accountID uuid.UUID, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, accountID uuid.UUID, tokenID string) (bool, error)
	Revoke(ctx context.Context, accountID uuid.UUID, tokenID string) error
	RevokeAll(ctx context.Context, accountID uuid.UUID) error
}

// AccessTokenKey is the Redis key of one issued token.
func AccessTokenKey(accountID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", accountID.String(), tokenID)
}

type redisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

func (s *redisTokenStore) Store(ctx context.Context, accountID uuid.UUID, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, AccessTokenKey(accountID, tokenID), "valid", ttl).Err()
}

func (s *redisTokenStore) Exists(ctx context.Context, accountID uuid.UUID, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, AccessTokenKey(accountID, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, accountID uuid.UUID, tokenID string) error {
	return s.client.Del(ctx, AccessTokenKey(accountID, tokenID)).Err()
}

func (s *redisTokenStore) RevokeAll(ctx context.Context, accountID uuid.UUID) error {
	pattern := AccessTokenKey(accountID, "*")
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}
