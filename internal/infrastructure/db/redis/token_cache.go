package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hrkit/leave-system/internal/core/domain"
)

// TokenCache holds ephemeral credentials in Redis with a per-key TTL.
// Key format: <purpose>:<email> (e.g. otp:alice@example.com), so SET naturally
// replaces any live token for the same (purpose, email) pair. Expiry is left
// entirely to Redis; a lapsed token is simply absent.
type TokenCache struct {
	client *redis.Client
}

// NewTokenCache creates a TokenCache wrapping the given Redis client.
func NewTokenCache(client *redis.Client) *TokenCache {
	return &TokenCache{client: client}
}

func (c *TokenCache) Set(ctx context.Context, purpose domain.TokenPurpose, email, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(purpose, email), value, ttl).Err(); err != nil {
		return fmt.Errorf("token cache set: %w", err)
	}
	return nil
}

func (c *TokenCache) Get(ctx context.Context, purpose domain.TokenPurpose, email string) (string, error) {
	val, err := c.client.Get(ctx, c.key(purpose, email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrTokenNotFound
		}
		return "", fmt.Errorf("token cache get: %w", err)
	}
	return val, nil
}

func (c *TokenCache) Delete(ctx context.Context, purpose domain.TokenPurpose, email string) error {
	if err := c.client.Del(ctx, c.key(purpose, email)).Err(); err != nil {
		return fmt.Errorf("token cache delete: %w", err)
	}
	return nil
}

func (c *TokenCache) key(purpose domain.TokenPurpose, email string) string {
	return fmt.Sprintf("%s:%s", purpose, email)
}
