package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keerthi/accidents-backend-go/pkg/response"
)

// RateLimiter implements a sliding-window request limiter keyed by client IP.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string][]time.Time
	limit   int
	window  time.Duration
}

// NewRateLimiter creates a rate limiter allowing limit requests per window
// and IP. Stale windows are pruned in the background.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		windows: make(map[string][]time.Time),
		limit:   limit,
		window:  window,
	}
	go rl.prune()
	return rl
}

// Allow reports whether a request from ip may proceed, recording it if so.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	recent := keepRecent(rl.windows[ip], now, rl.window)
	if len(recent) >= rl.limit {
		rl.windows[ip] = recent
		return false
	}
	rl.windows[ip] = append(recent, now)
	return true
}

func (rl *RateLimiter) prune() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, times := range rl.windows {
			recent := keepRecent(times, now, rl.window)
			if len(recent) == 0 {
				delete(rl.windows, ip)
			} else {
				rl.windows[ip] = recent
			}
		}
		rl.mu.Unlock()
	}
}

func keepRecent(times []time.Time, now time.Time, window time.Duration) []time.Time {
	var recent []time.Time
	for _, t := range times {
		if now.Sub(t) < window {
			recent = append(recent, t)
		}
	}
	return recent
}

// RateLimit middleware limits requests per client IP.
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(limit, window)

	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
