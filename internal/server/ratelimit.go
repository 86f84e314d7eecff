package server

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/osse101/PrizeGrid_Go/internal/auth"
	"github.com/osse101/PrizeGrid_Go/internal/handler"
	"github.com/osse101/PrizeGrid_Go/internal/logger"
	"github.com/osse101/PrizeGrid_Go/internal/metrics"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserRateLimiter keeps one token bucket per authenticated player
type UserRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

func NewUserRateLimiter(rps float64, burst int) *UserRateLimiter {
	return &UserRateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

func (l *UserRateLimiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = l.now()
	return e.limiter
}

// Allow spends one token for key
func (l *UserRateLimiter) Allow(key string) bool {
	return l.limiterFor(key).AllowN(l.now(), 1)
}

// Middleware must run after BearerAuthMiddleware; requests without a principal pass through untouched
func (l *UserRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := auth.FromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		if !l.Allow(p.UserID) {
			metrics.RequestsRejected.WithLabelValues(RejectUserRate).Inc()
			logger.FromContext(r.Context()).Warn(LogMsgRateLimited, "path", r.URL.Path)
			w.Header().Set(HeaderRetryAfter, strconv.Itoa(l.retryAfterSeconds()))
			handler.WriteError(w, http.StatusTooManyRequests, handler.KindRateLimited, handler.ErrMsgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *UserRateLimiter) retryAfterSeconds() int {
	if l.rate <= 0 {
		return 1
	}
	return int(math.Max(1, math.Ceil(1/float64(l.rate))))
}

// Sweep drops limiters idle for longer than idle and returns how many it removed
func (l *UserRateLimiter) Sweep(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idle)
	removed := 0
	for key, e := range l.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(l.limiters, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked players
func (l *UserRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// LimiterSweepJob runs Sweep from the worker pool
type LimiterSweepJob struct {
	limiter *UserRateLimiter
	idle    time.Duration
}

func NewLimiterSweepJob(l *UserRateLimiter, idle time.Duration) *LimiterSweepJob {
	return &LimiterSweepJob{limiter: l, idle: idle}
}

func (j *LimiterSweepJob) Name() string { return "rate_limiter_sweep" }

func (j *LimiterSweepJob) Process(ctx context.Context) error {
	if n := j.limiter.Sweep(j.idle); n > 0 {
		logger.FromContext(ctx).Debug(LogMsgLimitersSwept, "removed", n, "remaining", j.limiter.Len())
	}
	return nil
}
