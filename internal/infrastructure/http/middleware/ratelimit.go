package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/rezkam/catalog/internal/application/auth"
	"github.com/rezkam/catalog/internal/infrastructure/http/response"
)

const (
	// adminBucket keys the limiter shared by admin keys.
	adminBucket = "admin"

	// Idle buckets are pruned once this many accounts are tracked.
	maxBuckets = 10000
	bucketIdle = 10 * time.Minute
)

// RateLimiter applies a token bucket per account. It must run after Auth.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*rateEntry
	now      func() time.Time
}

type rateEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows perSecond sustained requests and burst extra per account.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: make(map[string]*rateEntry),
		now:      time.Now,
	}
}

// Limit is a Chi middleware answering 429 once an account's bucket is empty.
func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := adminBucket
		if scope, ok := auth.ScopeFromContext(r.Context()); ok && !scope.Admin {
			key = "account:" + scope.AccountID
		}

		if !l.limiter(key).Allow() {
			slog.WarnContext(r.Context(), "rate limit exceeded",
				"path", r.URL.Path,
				"method", r.Method,
				"bucket", key)
			w.Header().Set("Retry-After", "1")
			response.TooManyRequests(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= maxBuckets {
			l.prune(now.Add(-bucketIdle))
		}
		e = &rateEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

// prune forgets buckets last used before cutoff. Callers hold mu.
func (l *RateLimiter) prune(cutoff time.Time) {
	for key, e := range l.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(l.limiters, key)
		}
	}
}
