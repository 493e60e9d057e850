package middleware

import (
	apperrors "barberbook/pkg/errors"
	httputil "barberbook/pkg/http"
	"barberbook/pkg/logger"
	"barberbook/pkg/tenant"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTimeout = 30 * time.Minute

type tenantLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// TenantRateLimiter gives every tenant a token bucket refilled at
// limit per window, with a burst of limit.
type TenantRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*tenantLimiter
	every    rate.Limit
	burst    int
	log      *logger.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewTenantRateLimiter(limit int, window time.Duration, log *logger.Logger) *TenantRateLimiter {
	if limit <= 0 {
		limit = 1
	}
	rl := &TenantRateLimiter{
		limiters: make(map[string]*tenantLimiter),
		every:    rate.Every(window / time.Duration(limit)),
		burst:    limit,
		log:      log,
		stopCh:   make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

func (rl *TenantRateLimiter) Allow(tenantID string) bool {
	rl.mu.Lock()
	entry, ok := rl.limiters[tenantID]
	if !ok {
		entry = &tenantLimiter{limiter: rate.NewLimiter(rl.every, rl.burst)}
		rl.limiters[tenantID] = entry
	}
	entry.lastSeen = time.Now()
	rl.mu.Unlock()

	return entry.limiter.Allow()
}

func (rl *TenantRateLimiter) cleanup() {
	ticker := time.NewTicker(limiterIdleTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictIdle(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *TenantRateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for id, entry := range rl.limiters {
		if now.Sub(entry.lastSeen) > limiterIdleTimeout {
			delete(rl.limiters, id)
		}
	}
}

func (rl *TenantRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// TenantRateLimit must run after TenantResolution. Requests without a tenant
// pass through untouched.
func TenantRateLimit(limiter *TenantRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID, ok := tenant.FromContext(r.Context())
			if ok && !limiter.Allow(tenantID) {
				limiter.log.Warn("Rate limit exceeded",
					"request_id", RequestIDFromContext(r.Context()),
					"tenant_id", tenantID,
					"path", r.URL.Path,
				)
				_ = httputil.WriteError(w, apperrors.RateLimited("Rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
