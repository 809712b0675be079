// Package testutils provides shared test helpers: an in-memory Redis and a scripted dice roller
package testutils

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-spellchain/internal/redis"
)

// NewTestRedis starts a miniredis server and a client for it. Both are
// closed when the test ends.
func NewTestRedis(t testing.TB) (*miniredis.Miniredis, redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")
	t.Cleanup(func() {
		_ = client.Close()
	})

	return mr, client
}

// FlushTestRedis clears the client's current database
func FlushTestRedis(ctx context.Context, client redis.Client) error {
	return client.FlushDB(ctx).Err()
}
