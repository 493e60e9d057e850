package locker

import (
	"barberbook/pkg/logger"
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	token   string
	expires time.Time
}

// memoryBackend keeps locks in process memory. Only valid for a single
// instance of the API.
type memoryBackend struct {
	mu    sync.Mutex
	locks map[string]memoryEntry
	now   func() time.Time
}

func NewMemory(opts Options, log *logger.Logger) *Locker {
	return newLocker(&memoryBackend{locks: make(map[string]memoryEntry), now: time.Now}, opts, log)
}

func (m *memoryBackend) tryAcquire(_ context.Context, key, token string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if e, held := m.locks[key]; held && now.Before(e.expires) {
		return false, nil
	}
	m.locks[key] = memoryEntry{token: token, expires: now.Add(ttl)}
	return true, nil
}

func (m *memoryBackend) release(_ context.Context, key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, held := m.locks[key]; held && e.token == token {
		delete(m.locks, key)
	}
	return nil
}

func (m *memoryBackend) name() string {
	return "memory"
}
