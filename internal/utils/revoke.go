package utils

import (
	"context" // Context for Redis operations
	"time"    // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Revoked tokens are tracked by jti in Redis. A key only needs to live
// until the token's own expiration, after which verification rejects the
// token anyway, so every entry carries a TTL.

const revokedKeyPrefix = "revoked:jti:" // Key prefix for denylisted token IDs

// RevokeToken denylists a token ID until its natural expiration
func RevokeToken(ctx context.Context, rdb *redis.Client, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Already expired, nothing to track
	}
	return rdb.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err() // Mark the token ID with a TTL
}

// IsTokenRevoked reports whether a token ID has been denylisted
func IsTokenRevoked(ctx context.Context, rdb *redis.Client, jti string) (bool, error) {
	_, err := rdb.Get(ctx, revokedKeyPrefix+jti).Result() // Look up the token ID
	if err == redis.Nil {
		return false, nil // Key does not exist, token not revoked
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, nil // Key exists, token revoked
}
