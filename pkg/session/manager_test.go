package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pdaboat/pkg/adapters/memory"
	"github.com/aretw0/pdaboat/pkg/domain"
	"github.com/aretw0/pdaboat/pkg/ports"
	"github.com/aretw0/pdaboat/pkg/session"
)

// SlowStore adds latency so that lost updates show up if locking is missing.
type SlowStore struct {
	*memory.Store
}

func (s SlowStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	time.Sleep(time.Millisecond)
	return s.Store.Load(ctx, id)
}

func TestManager_UpdateIsSerialised(t *testing.T) {
	mgr := session.NewManager(SlowStore{memory.NewStore()})
	ctx := context.Background()
	id := "race-test"
	require.NoError(t, mgr.Create(ctx, domain.NewSession(id, "anbn", "aabb", domain.ModeMicro)))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := mgr.Update(ctx, id, func(s *domain.Session) error {
				s.Cursor++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	s, err := mgr.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 20, s.Cursor)
}

func TestManager_Create(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	require.NoError(t, mgr.Create(ctx, domain.NewSession("s1", "anbn", "", domain.ModeMicro)))
	err := mgr.Create(ctx, domain.NewSession("s1", "anbn", "", domain.ModeMicro))
	assert.ErrorIs(t, err, session.ErrSessionExists)

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, ids)
}

func TestManager_UpdateErrors(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	_, err := mgr.Update(ctx, "missing", func(*domain.Session) error { return nil })
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	require.NoError(t, mgr.Create(ctx, domain.NewSession("s1", "anbn", "ab", domain.ModeMicro)))
	boom := errors.New("boom")
	_, err = mgr.Update(ctx, "s1", func(s *domain.Session) error {
		s.Cursor = 7
		return boom
	})
	assert.ErrorIs(t, err, boom)

	s, err := mgr.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, s.Cursor, "failed updates are not saved")
}

type recordingLocker struct {
	mu    sync.Mutex
	keys  []string
	ttls  []time.Duration
	fails bool
}

func (l *recordingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fails {
		return nil, errors.New("redis down")
	}
	l.keys = append(l.keys, key)
	l.ttls = append(l.ttls, ttl)
	return func(context.Context) error { return errors.New("already expired") }, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := &recordingLocker{}
	mgr := session.NewManager(memory.NewStore(), session.WithLocker(locker), session.WithLockTTL(5*time.Second))
	ctx := context.Background()

	require.NoError(t, mgr.Save(ctx, "s1", domain.NewSession("s1", "anbn", "", domain.ModeMicro)))
	assert.Equal(t, []string{"s1"}, locker.keys)
	assert.Equal(t, []time.Duration{5 * time.Second}, locker.ttls)

	locker.fails = true
	_, err := mgr.Load(ctx, "s1")
	assert.Error(t, err)
}
