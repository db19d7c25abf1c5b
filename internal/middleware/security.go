package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/AnshRaj112/evolve-backend/pkg/clientip"
)

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

// KeyedLimiter holds one token bucket per key (an IP or a user id). Buckets
// idle for longer than ttl are dropped by Run.
type KeyedLimiter struct {
	limit rate.Limit
	burst int
	ttl   time.Duration

	mu      sync.Mutex
	entries map[string]*limiterEntry
}

func NewKeyedLimiter(limit rate.Limit, burst int, ttl time.Duration) *KeyedLimiter {
	return &KeyedLimiter{
		limit:   limit,
		burst:   burst,
		ttl:     ttl,
		entries: make(map[string]*limiterEntry),
	}
}

func (l *KeyedLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastUse = time.Now()
	return e.limiter
}

// Allow reports whether key may proceed now.
func (l *KeyedLimiter) Allow(key string) bool {
	return l.get(key).Allow()
}

// Take implements SubmissionLimiter.
func (l *KeyedLimiter) Take(_ context.Context, key string) (Decision, error) {
	lim := l.get(key)
	if lim.Allow() {
		return Decision{Allowed: true, Limit: l.burst, Remaining: int(lim.Tokens())}, nil
	}
	retry := time.Second
	if l.limit > 0 {
		retry = time.Duration(float64(time.Second) / float64(l.limit))
	}
	return Decision{Allowed: false, Limit: l.burst, RetryAfter: retry}, nil
}

// Len returns the number of tracked keys.
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Sweep drops buckets unused since before now-ttl.
func (l *KeyedLimiter) Sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if now.Sub(e.lastUse) > l.ttl {
			delete(l.entries, key)
		}
	}
}

// Run sweeps every interval until ctx is done.
func (l *KeyedLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.Sweep(now)
		}
	}
}

// PerIP rejects requests once the client IP's bucket is empty.
func PerIP(l *KeyedLimiter, message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(clientip.RealClientIP(r)) {
				writeError(w, http.StatusTooManyRequests, message)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Production limits: every route 1 req/s burst 10 per IP; sign-in and
// sign-up 1 per 5s burst 2 per IP.
const (
	globalRateLimitRPS   = 1
	globalRateLimitBurst = 10
	authRateLimitEvery   = 5 * time.Second
	authRateLimitBurst   = 2
	limiterTTL           = 30 * time.Minute
	limiterSweepInterval = 5 * time.Minute
)

// Security bundles the production middlewares and their limiters.
type Security struct {
	Global *KeyedLimiter
	Auth   *KeyedLimiter
}

func NewSecurity() *Security {
	return &Security{
		Global: NewKeyedLimiter(rate.Limit(globalRateLimitRPS), globalRateLimitBurst, limiterTTL),
		Auth:   NewKeyedLimiter(rate.Every(authRateLimitEvery), authRateLimitBurst, limiterTTL),
	}
}

// Start runs the limiter sweepers until ctx is done.
func (s *Security) Start(ctx context.Context) {
	go s.Global.Run(ctx, limiterSweepInterval)
	go s.Auth.Run(ctx, limiterSweepInterval)
}

// Middlewares returns SecurityHeaders followed by the global per-IP limit.
func (s *Security) Middlewares() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		SecurityHeaders,
		PerIP(s.Global, "Too many requests. Please slow down."),
	}
}

// AuthLimit is applied to the sign-in and sign-up routes only.
func (s *Security) AuthLimit() func(http.Handler) http.Handler {
	return PerIP(s.Auth, "Too many login attempts. Please try again later.")
}
