package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock obtained from a DistributedLocker.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker coordinates access to a session across processes (replicas sharing a
// store). The session manager layers it under its in-process locks.
type DistributedLocker interface {
	// Lock blocks until the lock for key is held or ctx is done. The lock expires after ttl
	// if never released. The returned UnlockFunc must be called to release it.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
