// Package ratelimit guards the public submission endpoints with a fixed
// window counter keyed by client IP.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"vofmun/internal/transport/http/shared"
	dErrors "vofmun/pkg/domain-errors"
	"vofmun/pkg/requestcontext"
)

// Counter increments a window-scoped key and reports the new count. The key
// expires with its window; implementations never reset mid-window.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Limiter applies a per-IP fixed window limit.
type Limiter struct {
	counter Counter
	limit   int64
	window  time.Duration
	logger  *slog.Logger
	clock   func() time.Time
}

type Option func(*Limiter)

// WithClock overrides the window clock, for tests.
func WithClock(clock func() time.Time) Option {
	return func(l *Limiter) { l.clock = clock }
}

// NewLimiter constructs a Limiter allowing limit requests per window.
func NewLimiter(counter Counter, limit int64, window time.Duration, logger *slog.Logger, opts ...Option) *Limiter {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Limiter{counter: counter, limit: limit, window: window, logger: logger, clock: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Middleware rejects requests over the limit with 429. A counter failure
// lets the request through: losing precision beats refusing registrations.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)
		if ip == "" {
			ip = r.RemoteAddr
		}

		windowStart := l.clock().Truncate(l.window).Unix()
		key := fmt.Sprintf("ratelimit:%s:%d", ip, windowStart)

		count, err := l.counter.Incr(ctx, key, l.window)
		if err != nil {
			l.logger.WarnContext(ctx, "rate limit counter unavailable",
				"error", err.Error(),
				"request_id", requestcontext.RequestID(ctx))
			next.ServeHTTP(w, r)
			return
		}

		if count > l.limit {
			l.logger.WarnContext(ctx, "rate limit exceeded",
				"client_ip", ip,
				"count", count,
				"request_id", requestcontext.RequestID(ctx))
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(l.window.Seconds())))
			shared.WriteError(w, dErrors.New(dErrors.CodeRateLimited,
				"Too many requests. Please try again later."))
			return
		}

		next.ServeHTTP(w, r)
	})
}
