package lock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds our token,
// so an expired lock taken over by another checkout is left alone.
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

// RedisLocker holds a lock until it is released, re-extending its ttl every third of
// the ttl. The ttl only bounds how long a crashed holder blocks the key.
type RedisLocker struct {
	rdb    redis.Cmdable
	logger *slog.Logger
}

func NewRedisLocker(rdb redis.Cmdable, logger *slog.Logger) *RedisLocker {
	return &RedisLocker{rdb: rdb, logger: logger}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context), error) {
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, errs.Wrapf(err, "acquire lock %s", key)
	}
	if !ok {
		return nil, errs.Mark(errs.Newf("lock %s is held", key), shared.ErrLockHeld)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go l.keepAlive(context.WithoutCancel(ctx), key, token, ttl, stop, done)

	var once sync.Once
	release := func(ctx context.Context) {
		once.Do(func() {
			close(stop)
			<-done
			if err := releaseScript.Run(ctx, l.rdb, []string{key}, token).Err(); err != nil {
				l.logger.WarnContext(ctx, "failed to release lock",
					slog.String("key", key),
					slog.String("error", err.Error()),
				)
			}
		})
	}
	return release, nil
}

func (l *RedisLocker) keepAlive(ctx context.Context, key, token string, ttl time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	interval := max(ttl/3, time.Millisecond)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			n, err := extendScript.Run(ctx, l.rdb, []string{key}, token, ttl.Milliseconds()).Int64()
			if err != nil {
				// keep trying; the key survives until its current ttl runs out
				l.logger.WarnContext(ctx, "failed to extend lock",
					slog.String("key", key),
					slog.String("error", err.Error()),
				)
				continue
			}
			if n == 0 {
				l.logger.ErrorContext(ctx, "lock lost before release", slog.String("key", key))
				return
			}
		}
	}
}
