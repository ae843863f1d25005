package shared

import (
	"context"
	"time"

	"booking-orchestrator/internal/pkg/errs"
)

//go:generate mockgen -source=lock.go -destination=../../../tests/mock/shared/lock_mock.go -package=sharedmock

var ErrLockHeld = errs.New("lock is held by another operation")

type Locker interface {
	// Acquire returns ErrLockHeld when key is taken. The lock is kept alive until release.
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context), err error)
}
