package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/angelmondragon/storefront-backend/api/responses"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// limiterIdleTTL drops per-caller buckets nobody has used for a while.
const limiterIdleTTL = 10 * time.Minute

type callerLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// CallerRateLimiter keeps one token bucket per caller in process memory. It
// throttles endpoints such as card top-ups where brute forcing codes is the
// concern; cluster-wide limits on auth go through AuthRateLimit instead.
type CallerRateLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	now     func() time.Time
	callers map[string]*callerLimiter
}

// NewCallerRateLimiter allows perMinute events per caller with the given burst.
// A non-positive rate disables the limiter.
func NewCallerRateLimiter(perMinute float64, burst int) *CallerRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &CallerRateLimiter{
		limit:   rate.Limit(perMinute / 60),
		burst:   burst,
		now:     time.Now,
		callers: map[string]*callerLimiter{},
	}
}

func (l *CallerRateLimiter) allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, c := range l.callers {
		if now.Sub(c.lastSeen) > limiterIdleTTL {
			delete(l.callers, k)
		}
	}

	c, ok := l.callers[key]
	if !ok {
		c = &callerLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.callers[key] = c
	}
	c.lastSeen = now

	reservation := c.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, time.Minute
	}
	delay := reservation.DelayFrom(now)
	if delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// RateLimit throttles by authenticated user, falling back to the client IP.
func RateLimit(limiter *CallerRateLimiter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil || limiter.limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := UserIDFromContext(r.Context())
			if key == "" {
				key = "ip:" + clientIP(r)
			}
			ok, retryAfter := limiter.allow(key)
			if !ok {
				seconds := int(retryAfter.Round(time.Second).Seconds())
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				if logg != nil {
					ctx := logg.WithFields(r.Context(), map[string]any{
						"route":       routePattern(r),
						"retry_after": seconds,
					})
					logg.Warn(ctx, "api.rate_limit.blocked")
				}
				responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many requests, try again later"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
