package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ELpastelAnyCtt/BurnBox/internal/metrics"
)

// RateLimit defines limits for an endpoint pattern.
type RateLimit struct {
	Requests int
	Window   time.Duration
}

// RateLimiter implements fixed-window rate limiting keyed by client IP.
// State lives in process; the service runs as a single process so there is
// nothing to coordinate across instances.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limits  map[string]RateLimit
	logger  zerolog.Logger
}

type window struct {
	start time.Time
	count int
}

// maxWindows caps the tracking map; stale entries are pruned when exceeded.
const maxWindows = 10000

// NewRateLimiter creates a rate limiter with per-endpoint limits.
func NewRateLimiter(logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		logger:  logger,
		limits: map[string]RateLimit{
			"POST /rooms":    {20, time.Hour},
			"DELETE /rooms/": {30, time.Hour},
			"POST /rooms/":   {60, time.Minute},
			"GET /rooms":     {120, time.Minute},
			"GET /generate-": {60, time.Minute},
		},
	}
}

// Middleware returns the rate limiting middleware.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pattern, limit, ok := rl.findLimit(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ip := clientIP(r)
		key := "ratelimit:" + pattern + ":" + ip
		allowed, remaining, resetAt := rl.allow(key, limit, time.Now())

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit.Requests))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(time.Until(resetAt).Seconds())))
			metrics.RateLimitHits.WithLabelValues(pattern).Inc()

			rl.logger.Warn().
				Str("ip", ip).
				Str("endpoint", r.URL.Path).
				Str("pattern", pattern).
				Msg("rate limit exceeded")

			writeEnvelopeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// findLimit returns the longest matching limit pattern for a request.
func (rl *RateLimiter) findLimit(r *http.Request) (string, RateLimit, bool) {
	key := r.Method + " " + r.URL.Path

	var bestPattern string
	var best RateLimit
	for pattern, limit := range rl.limits {
		if strings.HasPrefix(key, pattern) && len(pattern) > len(bestPattern) {
			bestPattern = pattern
			best = limit
		}
	}
	return bestPattern, best, bestPattern != ""
}

// allow checks and increments the fixed window for key.
// Returns (allowed, remaining, resetAt).
func (rl *RateLimiter) allow(key string, limit RateLimit, now time.Time) (bool, int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= limit.Window {
		if len(rl.windows) >= maxWindows {
			rl.prune(now)
		}
		w = &window{start: now}
		rl.windows[key] = w
	}
	w.count++

	remaining := limit.Requests - w.count
	if remaining < 0 {
		remaining = 0
	}
	return w.count <= limit.Requests, remaining, w.start.Add(limit.Window)
}

// prune drops windows older than the largest configured window. Caller must
// hold the lock.
func (rl *RateLimiter) prune(now time.Time) {
	var maxWindow time.Duration
	for _, limit := range rl.limits {
		if limit.Window > maxWindow {
			maxWindow = limit.Window
		}
	}
	for key, w := range rl.windows {
		if now.Sub(w.start) >= maxWindow {
			delete(rl.windows, key)
		}
	}
}

// clientIP extracts the client IP, preferring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
