package suite

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var client *redis.Client

	t.Run("Client is connected to an empty database", func(t *testing.T) {
		ctx, st := New(t)
		client = st.Redis

		// Then: the database answers and holds no keys
		require.NoError(t, st.Redis.Ping(ctx).Err())

		size, err := st.Redis.DBSize(ctx).Result()
		require.NoError(t, err)
		assert.Zero(t, size)
	})

	if client == nil {
		t.Skip("redis suite did not start")
	}

	// Then: cleanup closed the client
	err := client.Ping(context.Background()).Err()
	require.ErrorIs(t, err, redis.ErrClosed)
}
