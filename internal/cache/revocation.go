package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/port"
	"github.com/redis/go-redis/v9"
)

type RedisRevocationList struct {
	client *redis.Client
}

// compile-time check: *RedisRevocationList must satisfy port.RevocationList
var _ port.RevocationList = (*RedisRevocationList)(nil)

func NewRedisRevocationList(client *redis.Client) *RedisRevocationList {
	return &RedisRevocationList{client: client}
}

func (r *RedisRevocationList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisRevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists failed: %w", err)
	}
	return n > 0, nil
}

func revokedKey(tokenID string) string {
	return "revoked_token:" + tokenID
}
