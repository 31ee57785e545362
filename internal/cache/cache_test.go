package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unreachable() *Client {
	return NewFromRedis(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	}))
}

func TestClient_FailsSafe(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		client *Client
	}{
		{name: "nil client", client: nil},
		{name: "disabled by empty addr", client: New("", "", 0)},
		{name: "unreachable redis", client: unreachable()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.client.Set(ctx, "k", []byte("v"), time.Minute))

			got, err := tt.client.Get(ctx, "k")
			assert.NoError(t, err)
			assert.Nil(t, got)

			assert.NoError(t, tt.client.Delete(ctx, "k"))
			assert.NoError(t, tt.client.DeletePrefix(ctx, "user:"))

			var dst map[string]string
			assert.False(t, tt.client.GetJSON(ctx, "k", &dst))
			assert.Error(t, tt.client.Ping(ctx))
		})
	}
}

func TestTableLocker_FallsBackToLocal(t *testing.T) {
	for _, c := range []*Client{nil, unreachable()} {
		l := NewTableLocker(c, time.Second)

		unlock, err := l.Lock(context.Background(), "posts")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		_, err = l.Lock(ctx, "posts")
		cancel()
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		unlock()
		again, err := l.Lock(context.Background(), "posts")
		require.NoError(t, err)
		again()
	}
}

func TestKeepAlive_ExtendsUntilStopped(t *testing.T) {
	var calls atomic.Int32
	stop := keepAlive("posts", 5*time.Millisecond, func(context.Context) (bool, error) {
		calls.Add(1)
		return true, nil
	})

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	stop()
	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, calls.Load(), "extend called after stop")
}

func TestKeepAlive_StopsWhenLeaseLost(t *testing.T) {
	tests := []struct {
		name   string
		result bool
		err    error
		want   int32
	}{
		{name: "lease taken by another holder", result: false, want: 1},
		{name: "redis errors keep retrying", err: errors.New("connection refused"), want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			stop := keepAlive("posts", 5*time.Millisecond, func(context.Context) (bool, error) {
				calls.Add(1)
				return tt.result, tt.err
			})
			defer stop()

			time.Sleep(60 * time.Millisecond)
			assert.GreaterOrEqual(t, calls.Load(), tt.want)
			if tt.err == nil {
				assert.Equal(t, tt.want, calls.Load())
			}
		})
	}
}
