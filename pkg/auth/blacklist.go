package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/jordanlanch/leadcrm/pkg/cache"
)

// TokenBlacklist stores revoked JWT tokens in Redis until they expire.
// Tokens are stored by SHA256 hash so the raw token never lands in Redis.
type TokenBlacklist struct {
	cache *cache.Client
}

// NewTokenBlacklist creates a new token blacklist
func NewTokenBlacklist(cache *cache.Client) *TokenBlacklist {
	return &TokenBlacklist{cache: cache}
}

func blacklistKey(token string) string {
	hash := sha256.Sum256([]byte(token))
	return "jwt:blacklist:" + hex.EncodeToString(hash[:])
}

// Revoke adds a token to the blacklist. ttl should be the remaining lifetime
// of the token; entries expire with it.
func (b *TokenBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired, nothing to do
		return nil
	}
	if err := b.cache.Set(ctx, blacklistKey(token), "revoked", ttl); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsBlacklisted checks whether a token has been revoked
func (b *TokenBlacklist) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	return b.cache.Exists(ctx, blacklistKey(token))
}
