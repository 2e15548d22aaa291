package library_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/pictograph/pkg/adapters/memory"
	"github.com/aretw0/pictograph/pkg/adapters/redis"
	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/aretw0/pictograph/pkg/library"
	"github.com/aretw0/pictograph/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency and records overlapping writes.
type SlowStore struct {
	*memory.Store
	active  atomic.Int32
	overlap atomic.Bool
}

func (s *SlowStore) Save(ctx context.Context, name string, doc *domain.Document) error {
	if s.active.Add(1) > 1 {
		s.overlap.Store(true)
	}
	defer s.active.Add(-1)
	time.Sleep(5 * time.Millisecond) // Simulate IO
	return s.Store.Save(ctx, name, doc)
}

func TestManager_SerializesWrites(t *testing.T) {
	store := &SlowStore{Store: memory.NewStore()}
	manager := library.NewManager(store)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, manager.Save(ctx, "race-test", domain.NewDocument()))
		}()
	}
	wg.Wait()

	assert.False(t, store.overlap.Load(), "saves of one document must not overlap")

	names, err := manager.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"race-test"}, names)
	assert.Same(t, store, manager.Store())
}

func TestManager_LoadMissing(t *testing.T) {
	manager := library.NewManager(memory.NewStore())
	_, err := manager.Load(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestManager_DistributedLock(t *testing.T) {
	mr := miniredis.RunT(t)
	store := redis.New(mr.Addr(), "", 0, redis.WithPrefix("test:graph:"))
	defer store.Close()

	locker := redis.NewLocker(store.Client(), "test:")
	manager := library.NewManager(store, library.WithLocker(locker), library.WithLockTTL(time.Minute))
	ctx := context.Background()

	err := manager.WithLock(ctx, "greeting", func(ctx context.Context) error {
		assert.True(t, mr.Exists("test:lock:document:greeting"), "lock held while fn runs")
		return nil
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists("test:lock:document:greeting"), "lock released afterwards")
}

type failingLocker struct{}

func (failingLocker) Lock(context.Context, string, time.Duration) (ports.UnlockFunc, error) {
	return nil, errors.New("redis down")
}

func TestManager_LockFailure(t *testing.T) {
	manager := library.NewManager(memory.NewStore(), library.WithLocker(failingLocker{}))
	called := false
	err := manager.WithLock(context.Background(), "doc", func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorContains(t, err, "redis down")
	assert.False(t, called)
}
