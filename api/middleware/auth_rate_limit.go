package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-backend/api/responses"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const (
	authThrottlePrefix = "sf:rate_limit"
	// Auth bodies are tiny; anything larger is not peeked for an email.
	maxAuthBodyPeek = 16 << 10
)

type rateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// AuthThrottle limits one auth route (login or register) per client IP and
// per submitted email. Counters are fixed windows in Redis so every replica
// shares them. A zero limit turns that dimension off.
type AuthThrottle struct {
	Name     string
	Window   time.Duration
	PerIP    int
	PerEmail int
}

type throttleHit struct {
	dimension string
	subject   string
	key       string
	limit     int
}

func (t AuthThrottle) route() string {
	if name := strings.ToLower(strings.TrimSpace(t.Name)); name != "" {
		return name
	}
	return "auth"
}

func (t AuthThrottle) key(dimension, subject string) string {
	return strings.Join([]string{authThrottlePrefix, t.route(), dimension, subject}, ":")
}

// hits lists the counters a request increments. Emails only appear hashed.
func (t AuthThrottle) hits(ip, email string) []throttleHit {
	var out []throttleHit
	if t.PerIP > 0 && ip != "" {
		out = append(out, throttleHit{dimension: "ip", subject: ip, key: t.key("ip", ip), limit: t.PerIP})
	}
	if t.PerEmail > 0 && email != "" {
		digest := emailDigest(email)
		out = append(out, throttleHit{dimension: "email", subject: digest, key: t.key("email", digest), limit: t.PerEmail})
	}
	return out
}

// AuthRateLimit rejects a request with 429 and Retry-After once any of its
// counters passes the limit. Redis errors fail closed with a dependency error.
func AuthRateLimit(throttle AuthThrottle, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil || throttle.Window <= 0 || (throttle.PerIP <= 0 && throttle.PerEmail <= 0) {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var email string
			if throttle.PerEmail > 0 {
				peeked, err := peekEmail(r)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
					return
				}
				email = peeked
			}

			for _, hit := range throttle.hits(clientIP(r), email) {
				count, err := store.IncrWithTTL(ctx, hit.key, throttle.Window)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
					return
				}
				if count > int64(hit.limit) {
					rejectThrottled(ctx, logg, w, throttle, hit, count)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rejectThrottled(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, throttle AuthThrottle, hit throttleHit, count int64) {
	if logg != nil {
		field := "ip"
		if hit.dimension == "email" {
			field = "email_hash"
		}
		ctx = logg.WithFields(ctx, map[string]any{
			"route":          throttle.route(),
			"dimension":      hit.dimension,
			field:            hit.subject,
			"attempts":       count,
			"limit":          hit.limit,
			"window_seconds": int(throttle.Window.Seconds()),
		})
		logg.Warn(ctx, "auth.throttled")
	}
	w.Header().Set("Retry-After", strconv.Itoa(int(throttle.Window.Seconds())))
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, try again later"))
}

// peekEmail reads the JSON email field and restores the body for the handler.
func peekEmail(r *http.Request) (string, error) {
	if r.Body == nil {
		return "", nil
	}
	head, err := io.ReadAll(io.LimitReader(r.Body, maxAuthBodyPeek))
	if err != nil {
		return "", err
	}
	r.Body = readCloser{Reader: io.MultiReader(bytes.NewReader(head), r.Body), Closer: r.Body}

	var body struct {
		Email string `json:"email"`
	}
	if json.Unmarshal(head, &body) != nil {
		return "", nil
	}
	return strings.ToLower(strings.TrimSpace(body.Email)), nil
}

type readCloser struct {
	io.Reader
	io.Closer
}

func emailDigest(email string) string {
	sum := sha256.Sum256([]byte(email))
	return hex.EncodeToString(sum[:])
}

// clientIP trusts the first X-Forwarded-For hop, then X-Real-IP, then the
// socket peer.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
