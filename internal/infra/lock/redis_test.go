//go:build e2e

package lock_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"booking-orchestrator/internal/infra/lock"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: host + ":" + port.Port()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRedisLocker(t *testing.T) {
	rdb := startRedis(t)
	locker := lock.NewRedisLocker(rdb, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "checkout:a", time.Minute)
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, "checkout:a", time.Minute)
	assert.True(t, errs.Is(err, shared.ErrLockHeld))

	other, err := locker.Acquire(ctx, "checkout:b", time.Minute)
	require.NoError(t, err)
	other(ctx)

	release(ctx)
	again, err := locker.Acquire(ctx, "checkout:a", time.Minute)
	require.NoError(t, err)
	again(ctx)
}

func TestRedisLocker_ReleaseKeepsForeignLock(t *testing.T) {
	rdb := startRedis(t)
	locker := lock.NewRedisLocker(rdb, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "checkout:c", time.Minute)
	require.NoError(t, err)

	// another holder took the key over, e.g. after this one stalled past its ttl
	require.NoError(t, rdb.Set(ctx, "checkout:c", "someone-else", time.Minute).Err())

	release(ctx)
	got, err := rdb.Get(ctx, "checkout:c").Result()
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got, "stale release must not drop the new holder")
}

func TestRedisLocker_ExtendsWhileHeld(t *testing.T) {
	rdb := startRedis(t)
	locker := lock.NewRedisLocker(rdb, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "checkout:d", 300*time.Millisecond)
	require.NoError(t, err)

	// well past the original ttl
	time.Sleep(time.Second)
	_, err = locker.Acquire(ctx, "checkout:d", time.Minute)
	assert.True(t, errs.Is(err, shared.ErrLockHeld), "a held lock must outlive its initial ttl")

	release(ctx)
	release(ctx)
	exists, err := rdb.Exists(ctx, "checkout:d").Result()
	require.NoError(t, err)
	assert.Zero(t, exists)

	time.Sleep(400 * time.Millisecond)
	again, err := locker.Acquire(ctx, "checkout:d", time.Minute)
	require.NoError(t, err, "a released lock is no longer extended")
	again(ctx)
}
