package locker

import (
	"barberbook/pkg/logger"
	"barberbook/pkg/model"
	"context"
	"errors"
	"time"
)

// ErrLockHeld is returned by a LockStore when the key is already taken.
var ErrLockHeld = errors.New("lock held")

// LockStore persists lock documents. Insert must fail with ErrLockHeld when a
// document with the same ID exists.
type LockStore interface {
	Insert(ctx context.Context, lock *model.BookingLock) error
	DeleteExpired(ctx context.Context, id string, now time.Time) error
	DeleteOwned(ctx context.Context, id, token string) error
}

type mongoBackend struct {
	store LockStore
	now   func() time.Time
}

func NewMongo(store LockStore, opts Options, log *logger.Logger) *Locker {
	return newLocker(&mongoBackend{store: store, now: time.Now}, opts, log)
}

func (m *mongoBackend) tryAcquire(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	now := m.now().UTC()

	// The TTL index reaps expired locks lazily, so clear a stale holder first.
	if err := m.store.DeleteExpired(ctx, key, now); err != nil {
		return false, err
	}

	err := m.store.Insert(ctx, &model.BookingLock{
		ID:        key,
		Token:     token,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	})
	if errors.Is(err, ErrLockHeld) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (m *mongoBackend) release(ctx context.Context, key, token string) error {
	return m.store.DeleteOwned(ctx, key, token)
}

func (m *mongoBackend) name() string {
	return "mongo"
}
