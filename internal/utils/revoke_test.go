package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestRevokeToken_DenylistsUntilTTL(t *testing.T) {
	ctx := context.Background()
	rdb := testRedis(t)

	revoked, err := IsTokenRevoked(ctx, rdb, "jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked error: %v", err)
	}
	if revoked {
		t.Fatalf("token should not be revoked before RevokeToken")
	}

	if err := RevokeToken(ctx, rdb, "jti-1", time.Hour); err != nil {
		t.Fatalf("RevokeToken error: %v", err)
	}

	revoked, err = IsTokenRevoked(ctx, rdb, "jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked error: %v", err)
	}
	if !revoked {
		t.Fatalf("token should be revoked after RevokeToken")
	}

	// Other token IDs are unaffected
	revoked, err = IsTokenRevoked(ctx, rdb, "jti-2")
	if err != nil {
		t.Fatalf("IsTokenRevoked error: %v", err)
	}
	if revoked {
		t.Fatalf("unrelated token ID reported as revoked")
	}
}

func TestRevokeToken_ExpiredTokenIsNoop(t *testing.T) {
	ctx := context.Background()
	rdb := testRedis(t)

	// A token already past expiration needs no denylist entry
	if err := RevokeToken(ctx, rdb, "jti-old", -time.Minute); err != nil {
		t.Fatalf("RevokeToken error: %v", err)
	}

	revoked, err := IsTokenRevoked(ctx, rdb, "jti-old")
	if err != nil {
		t.Fatalf("IsTokenRevoked error: %v", err)
	}
	if revoked {
		t.Fatalf("expired token should not occupy a denylist entry")
	}
}
