package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jordanlanch/leadcrm/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBlacklist(t *testing.T) (*TokenBlacklist, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	cacheClient, err := cache.NewClient("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { cacheClient.Close() })

	return NewTokenBlacklist(cacheClient), mr
}

func TestBlacklistRevoke(t *testing.T) {
	bl, _ := newBlacklist(t)
	ctx := context.Background()

	require.NoError(t, bl.Revoke(ctx, "token-a", time.Minute))

	revoked, err := bl.IsBlacklisted(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = bl.IsBlacklisted(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestBlacklistEntryExpires(t *testing.T) {
	bl, mr := newBlacklist(t)
	ctx := context.Background()

	require.NoError(t, bl.Revoke(ctx, "short-lived", time.Second))
	mr.FastForward(2 * time.Second)

	revoked, err := bl.IsBlacklisted(ctx, "short-lived")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestBlacklistExpiredTokenIsNoop(t *testing.T) {
	bl, mr := newBlacklist(t)

	require.NoError(t, bl.Revoke(context.Background(), "already-expired", -time.Minute))
	assert.Empty(t, mr.Keys())
}
