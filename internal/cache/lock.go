package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"clubportal/internal/csvstore"
)

const lockKeyPrefix = "lock:table:"

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)

// TableLocker serializes table writes across processes sharing one data
// directory. The in-process lock is taken first, then a redis lease. When
// redis is unreachable the lease step is skipped and only the in-process lock
// applies.
type TableLocker struct {
	local *csvstore.LocalLocker
	cache *Client
	lease time.Duration
	retry time.Duration
}

var _ csvstore.Locker = (*TableLocker)(nil)

// NewTableLocker creates a locker. lease bounds how long a crashed holder can
// block others. A live holder extends its lease every lease/3 until it
// unlocks, so slow writes keep the lock.
func NewTableLocker(c *Client, lease time.Duration) *TableLocker {
	if lease <= 0 {
		lease = 10 * time.Second
	}
	return &TableLocker{
		local: csvstore.NewLocalLocker(),
		cache: c,
		lease: lease,
		retry: 25 * time.Millisecond,
	}
}

// Lock implements csvstore.Locker.
func (l *TableLocker) Lock(ctx context.Context, table string) (func(), error) {
	unlockLocal, err := l.local.Lock(ctx, table)
	if err != nil {
		return nil, err
	}
	if l.cache == nil || l.cache.client == nil {
		return unlockLocal, nil
	}

	key := lockKeyPrefix + table
	token := uuid.NewString()
	for {
		ok, err := l.cache.client.SetNX(ctx, key, token, l.lease).Result()
		if err != nil {
			if ctx.Err() != nil {
				unlockLocal()
				return nil, ctx.Err()
			}
			// fail safe: fall back to the process-local lock
			slog.WarnContext(ctx, "redis table lock unavailable", slog.String("table", table), slog.Any("err", err))
			return unlockLocal, nil
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			unlockLocal()
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}

	stop := keepAlive(table, l.lease/3, func(ctx context.Context) (bool, error) {
		n, err := extendScript.Run(ctx, l.cache.client, []string{key}, token, l.lease.Milliseconds()).Int()
		return n == 1, err
	})

	return func() {
		stop()
		rctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, l.cache.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			slog.Warn("release redis table lock", slog.String("table", table), slog.Any("err", err))
		}
		unlockLocal()
	}, nil
}

// keepAlive calls extend every interval until stop is called or extend
// reports the lease is no longer ours.
func keepAlive(table string, every time.Duration, extend func(context.Context) (bool, error)) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			ok, err := extend(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				slog.Warn("extend redis table lock", slog.String("table", table), slog.Any("err", err))
				continue
			}
			if !ok {
				slog.Warn("redis table lock lost", slog.String("table", table))
				return
			}
		}
	}()
	return func() {
		cancel()
		<-done
	}
}
