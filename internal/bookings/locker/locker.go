// Package locker serializes booking writes per staff member and day.
package locker

import (
	"barberbook/pkg/logger"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotAcquired is returned when the lock stayed held for the whole wait.
var ErrNotAcquired = errors.New("lock not acquired")

const (
	DefaultTTL          = 10 * time.Second
	DefaultWait         = 2 * time.Second
	DefaultPollInterval = 25 * time.Millisecond
)

// backend is one lock store. tryAcquire must be atomic: at most one token
// holds a key until it is released or ttl passes.
type backend interface {
	tryAcquire(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	release(ctx context.Context, key, token string) error
	name() string
}

type Options struct {
	TTL          time.Duration
	Wait         time.Duration
	PollInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	if o.Wait < 0 {
		o.Wait = 0
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	return o
}

type Locker struct {
	store backend
	opts  Options
	log   *logger.Logger
}

func newLocker(store backend, opts Options, log *logger.Logger) *Locker {
	if log == nil {
		log = logger.Discard()
	}
	return &Locker{store: store, opts: opts.withDefaults(), log: log.Component("locker")}
}

// Lease is a held lock. Release is safe to call more than once.
type Lease struct {
	locker   *Locker
	key      string
	token    string
	released bool
}

func (l *Lease) Key() string {
	return l.key
}

func (l *Lease) Release(ctx context.Context) error {
	if l == nil || l.released {
		return nil
	}
	l.released = true
	if err := l.locker.store.release(ctx, l.key, l.token); err != nil {
		l.locker.log.Warn("Failed to release lock", "key", l.key, "backend", l.locker.store.name(), "error", err)
		return fmt.Errorf("release %s: %w", l.key, err)
	}
	return nil
}

// Acquire takes the lock for key, polling until Options.Wait elapses.
func (l *Locker) Acquire(ctx context.Context, key string) (*Lease, error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.opts.Wait)

	for attempt := 1; ; attempt++ {
		ok, err := l.store.tryAcquire(ctx, key, token, l.opts.TTL)
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			l.log.Debug("Lock acquired", "key", key, "backend", l.store.name(), "attempts", attempt)
			return &Lease{locker: l, key: key, token: token}, nil
		}

		if !time.Now().Add(l.opts.PollInterval).Before(deadline) {
			l.log.Info("Lock busy", "key", key, "backend", l.store.name(), "attempts", attempt)
			return nil, fmt.Errorf("%w: %s", ErrNotAcquired, key)
		}

		timer := time.NewTimer(l.opts.PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// SlotKey names the lock guarding one staff member's bookings on one date.
func SlotKey(tenantID, staffID string, date time.Time) string {
	return fmt.Sprintf("booking_lock_%s_%s_%s", tenantID, staffID, date.Format("20060102"))
}
