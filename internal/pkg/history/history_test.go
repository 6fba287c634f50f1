package history

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return client, cleanup
}

func TestNewStore(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	s := NewStore(client, 20)

	assert.NotNil(t, s)
	assert.Equal(t, 20, s.window)
	assert.Equal(t, client, s.client)
}

func TestStore_AppendAndRecent(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	s := NewStore(client, 20)
	ctx := context.Background()

	t.Run("empty history", func(t *testing.T) {
		msgs, err := s.Recent(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})

	t.Run("append single turn", func(t *testing.T) {
		err := s.Append(ctx, 2, Message{Role: "user", Content: "oi"})
		require.NoError(t, err)

		msgs, err := s.Recent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "user", msgs[0].Role)
		assert.Equal(t, "oi", msgs[0].Content)
	})

	t.Run("append pair keeps order", func(t *testing.T) {
		err := s.Append(ctx, 3,
			Message{Role: "user", Content: "como você está?"},
			Message{Role: "assistant", Content: "Estou aqui com você."},
		)
		require.NoError(t, err)

		msgs, err := s.Recent(ctx, 3)
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, "user", msgs[0].Role)
		assert.Equal(t, "assistant", msgs[1].Role)
	})

	t.Run("append with no messages is a no-op", func(t *testing.T) {
		err := s.Append(ctx, 4)
		require.NoError(t, err)

		msgs, err := s.Recent(ctx, 4)
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})
}

func TestStore_WindowTrimsOldest(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	s := NewStore(client, 4)
	ctx := context.Background()

	for i := 1; i <= 6; i++ {
		err := s.Append(ctx, 1, Message{Role: "user", Content: fmt.Sprintf("msg %d", i)})
		require.NoError(t, err)
	}

	msgs, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 4)

	// oldest two dropped, order preserved
	assert.Equal(t, "msg 3", msgs[0].Content)
	assert.Equal(t, "msg 6", msgs[3].Content)
}

func TestStore_UsersAreIsolated(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	s := NewStore(client, 20)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, 1, Message{Role: "user", Content: "from alice"}))
	require.NoError(t, s.Append(ctx, 2, Message{Role: "user", Content: "from bob"}))

	msgs1, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, msgs1, 1)
	assert.Equal(t, "from alice", msgs1[0].Content)

	msgs2, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, msgs2, 1)
	assert.Equal(t, "from bob", msgs2[0].Content)
}

func TestStore_Clear(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	s := NewStore(client, 20)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, 1, Message{Role: "user", Content: "hello"}))

	err := s.Clear(ctx, 1)
	require.NoError(t, err)

	msgs, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestStore_SkipsCorruptEntries(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	s := NewStore(client, 20)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, 1, Message{Role: "user", Content: "valid"}))
	require.NoError(t, client.RPush(ctx, s.key(1), "not json").Err())

	msgs, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "valid", msgs[0].Content)
}
