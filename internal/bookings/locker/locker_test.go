package locker

import (
	"barberbook/pkg/model"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastOpts = Options{TTL: time.Second, Wait: 100 * time.Millisecond, PollInterval: 5 * time.Millisecond}

func TestMemory_MutualExclusion(t *testing.T) {
	l := NewMemory(fastOpts, nil)
	ctx := context.Background()

	lease, err := l.Acquire(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "k", lease.Key())

	_, err = l.Acquire(ctx, "k")
	assert.ErrorIs(t, err, ErrNotAcquired)

	other, err := l.Acquire(ctx, "other")
	require.NoError(t, err, "different keys must not contend")
	require.NoError(t, other.Release(ctx))

	require.NoError(t, lease.Release(ctx))
	require.NoError(t, lease.Release(ctx), "double release is a no-op")

	again, err := l.Acquire(ctx, "k")
	require.NoError(t, err)
	require.NoError(t, again.Release(ctx))
}

func TestMemory_WaitsForRelease(t *testing.T) {
	l := NewMemory(Options{TTL: time.Second, Wait: time.Second, PollInterval: 5 * time.Millisecond}, nil)
	ctx := context.Background()

	lease, err := l.Acquire(ctx, "k")
	require.NoError(t, err)

	go func() {
		time.Sleep(30 * time.Millisecond)
		_ = lease.Release(ctx)
	}()

	second, err := l.Acquire(ctx, "k")
	require.NoError(t, err)
	require.NoError(t, second.Release(ctx))
}

func TestMemory_ExpiredLeaseCannotReleaseNewHolder(t *testing.T) {
	now := time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC)
	b := &memoryBackend{locks: map[string]memoryEntry{}, now: func() time.Time { return now }}
	l := newLocker(b, fastOpts, nil)
	ctx := context.Background()

	stale, err := l.Acquire(ctx, "k")
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	fresh, err := l.Acquire(ctx, "k")
	require.NoError(t, err, "expired lock must be taken over")

	require.NoError(t, stale.Release(ctx))
	_, err = l.Acquire(ctx, "k")
	assert.ErrorIs(t, err, ErrNotAcquired, "stale release must not free the new holder")

	require.NoError(t, fresh.Release(ctx))
}

func TestAcquire_ContextCancelled(t *testing.T) {
	l := NewMemory(Options{TTL: time.Minute, Wait: time.Minute, PollInterval: 5 * time.Millisecond}, nil)
	held, err := l.Acquire(context.Background(), "k")
	require.NoError(t, err)
	defer held.Release(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = l.Acquire(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAcquire_ConcurrentSingleWinner(t *testing.T) {
	l := NewMemory(Options{TTL: time.Minute, Wait: 0}, nil)
	ctx := context.Background()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Acquire(ctx, "slot"); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

type fakeLockStore struct {
	mu     sync.Mutex
	docs   map[string]*model.BookingLock
	insErr error
}

func newFakeLockStore() *fakeLockStore {
	return &fakeLockStore{docs: map[string]*model.BookingLock{}}
}

func (f *fakeLockStore) Insert(_ context.Context, lock *model.BookingLock) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insErr != nil {
		return f.insErr
	}
	if _, ok := f.docs[lock.ID]; ok {
		return ErrLockHeld
	}
	cp := *lock
	f.docs[lock.ID] = &cp
	return nil
}

func (f *fakeLockStore) DeleteExpired(_ context.Context, id string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.docs[id]; ok && d.ExpiresAt.Before(now) {
		delete(f.docs, id)
	}
	return nil
}

func (f *fakeLockStore) DeleteOwned(_ context.Context, id, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.docs[id]; ok && d.Token == token {
		delete(f.docs, id)
	}
	return nil
}

func TestMongo_AcquireRelease(t *testing.T) {
	store := newFakeLockStore()
	l := NewMongo(store, fastOpts, nil)
	ctx := context.Background()

	lease, err := l.Acquire(ctx, "booking_lock_t_s_20300107")
	require.NoError(t, err)

	doc := store.docs["booking_lock_t_s_20300107"]
	require.NotNil(t, doc)
	assert.NotEmpty(t, doc.Token)
	assert.True(t, doc.ExpiresAt.After(doc.CreatedAt))

	_, err = l.Acquire(ctx, "booking_lock_t_s_20300107")
	assert.ErrorIs(t, err, ErrNotAcquired)

	require.NoError(t, lease.Release(ctx))
	assert.Empty(t, store.docs)
}

func TestMongo_ReclaimsExpiredLock(t *testing.T) {
	store := newFakeLockStore()
	store.docs["k"] = &model.BookingLock{ID: "k", Token: "dead", ExpiresAt: time.Now().Add(-time.Minute)}
	l := NewMongo(store, fastOpts, nil)

	lease, err := l.Acquire(context.Background(), "k")
	require.NoError(t, err)
	assert.NotEqual(t, "dead", store.docs["k"].Token)
	require.NoError(t, lease.Release(context.Background()))
}

func TestMongo_StoreErrorPropagates(t *testing.T) {
	store := newFakeLockStore()
	boom := errors.New("connection reset")
	store.insErr = boom

	_, err := NewMongo(store, fastOpts, nil).Acquire(context.Background(), "k")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotAcquired)
}

func TestSlotKey(t *testing.T) {
	date := time.Date(2030, 1, 7, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "booking_lock_shop1_abc_20300107", SlotKey("shop1", "abc", date))
}
