package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// SubmissionWindow is the fixed window for journal submissions.
	SubmissionWindow = time.Minute
	// SubmissionKeyPrefix is the Redis key prefix for submission counters
	SubmissionKeyPrefix = "ratelimit:journal:"
)

// Decision is the outcome of one rate-limit check.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// SubmissionLimiter caps journal submissions per user. Each submission
// triggers several AI calls, so it is limited separately from other routes.
type SubmissionLimiter interface {
	Take(ctx context.Context, key string) (Decision, error)
}

// RedisWindowLimiter counts requests per key in a fixed window shared by
// every instance.
type RedisWindowLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisWindowLimiter(client *redis.Client, limit int, window time.Duration) *RedisWindowLimiter {
	return &RedisWindowLimiter{client: client, limit: limit, window: window}
}

func (l *RedisWindowLimiter) Take(ctx context.Context, key string) (Decision, error) {
	redisKey := SubmissionKeyPrefix + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.window)
	ttl := pipe.TTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, err
	}

	count := int(incr.Val())
	d := Decision{Allowed: count <= l.limit, Limit: l.limit, Remaining: l.limit - count}
	if d.Remaining < 0 {
		d.Remaining = 0
	}
	if !d.Allowed {
		d.RetryAfter = ttl.Val()
		if d.RetryAfter <= 0 {
			d.RetryAfter = l.window
		}
	}
	return d, nil
}

// LimitSubmissions applies limiter per authenticated user. It must run after
// RequireAuth. Limiter errors fail open.
func LimitSubmissions(limiter SubmissionLimiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			d, err := limiter.Take(r.Context(), userID.String())
			if err != nil {
				logger.Warn("submission rate limiter unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			if !d.Allowed {
				seconds := int(d.RetryAfter.Round(time.Second).Seconds())
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				writeError(w, http.StatusTooManyRequests, "Too many journal submissions. Please wait a moment and try again.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
