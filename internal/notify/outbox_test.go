package notify

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

func TestMemoryOutbox(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	o := NewMemoryOutbox()
	require.NoError(t, o.Enqueue(ctx, OutbidNotice{LotID: "lot1", UserID: "alice", NewHighBidderID: "bob", Price: 16, At: at}))
	require.NoError(t, o.Enqueue(ctx, OutbidNotice{LotID: "lot1", UserID: "bob", NewHighBidderID: "alice", Price: 21, At: at}))

	got := o.Drain()
	require.Len(t, got, 2)
	require.Equal(t, "alice", got[0].UserID)
	require.Empty(t, o.Drain())
}

func TestRedisOutbox(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	o := NewRedisOutbox(client, "")
	require.Equal(t, DefaultOutboxKey, o.Key)

	_, ok, err := o.Pop(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	first := OutbidNotice{LotID: "lot1", UserID: "alice", NewHighBidderID: "bob", Price: 16, At: at}
	second := OutbidNotice{LotID: "lot2", UserID: "carol", NewHighBidderID: "dave", Price: 40, At: at.Add(time.Second)}
	require.NoError(t, o.Enqueue(ctx, first))
	require.NoError(t, o.Enqueue(ctx, second))

	n, ok, err := o.Pop(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, first, n)

	n, ok, err = o.Pop(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, second, n)

	_, err = mr.Lpush(DefaultOutboxKey, "{not json")
	require.NoError(t, err)
	_, _, err = o.Pop(ctx)
	require.Error(t, err)

	mr.Close()
	require.Error(t, o.Enqueue(ctx, first))
}
