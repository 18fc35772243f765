package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"storefront/internal/infra"
)

type ipWindow struct {
	remaining int
	resetAt   time.Time
}

type rateLimiter struct {
	mu      sync.Mutex
	limit   int
	per     time.Duration
	windows map[string]*ipWindow
	now     func() time.Time
}

func newRateLimiter(limit int, per time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:   limit,
		per:     per,
		windows: make(map[string]*ipWindow),
		now:     time.Now,
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[ip]
	if !ok || !now.Before(w.resetAt) {
		rl.prune(now)
		w = &ipWindow{remaining: rl.limit, resetAt: now.Add(rl.per)}
		rl.windows[ip] = w
	}
	if w.remaining == 0 {
		return false
	}
	w.remaining--
	return true
}

// prune runs under the limiter lock whenever a window rolls over, dropping
// expired entries so the map does not grow with every client ever seen.
func (rl *rateLimiter) prune(now time.Time) {
	for ip, w := range rl.windows {
		if !now.Before(w.resetAt) {
			delete(rl.windows, ip)
		}
	}
}

// RateLimit enforces the per-client request budget from Config over a fixed
// one-minute window, keyed by forwarded-for or remote IP.
func RateLimit(cfg *infra.Config) func(http.Handler) http.Handler {
	rl := newRateLimiter(cfg.RateLimitPerMin, time.Minute)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(clientIP(r)) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers the first valid X-Forwarded-For entry, then the remote
// address with or without a port.
func clientIP(r *http.Request) string {
	for _, part := range strings.Split(r.Header.Get("X-Forwarded-For"), ",") {
		if ip := strings.TrimSpace(part); net.ParseIP(ip) != nil {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && net.ParseIP(host) != nil {
		return host
	}
	return r.RemoteAddr
}
