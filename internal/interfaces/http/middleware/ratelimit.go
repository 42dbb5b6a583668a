package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pimify/backend/internal/infrastructure/logger"
	"github.com/pimify/backend/internal/interfaces/http/dto"
)

// RateLimiter is an in-memory fixed-window limiter keyed by client
type RateLimiter struct {
	mu          sync.Mutex
	clients     map[string]*client
	limit       int           // Maximum requests per window
	window      time.Duration // Time window
	cleanupTick time.Duration // Cleanup interval
	now         func() time.Time
	stop        chan struct{}
	stopOnce    sync.Once
}

type client struct {
	tokens    int
	lastReset time.Time
}

// NewRateLimiter creates a rate limiter and starts its cleanup goroutine.
// Call Stop to end the goroutine.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients:     make(map[string]*client),
		limit:       limit,
		window:      window,
		cleanupTick: window * 2,
		now:         time.Now,
		stop:        make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Stop ends the cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Limit returns the number of requests allowed per window
func (rl *RateLimiter) Limit() int {
	return rl.limit
}

// cleanup removes expired clients periodically
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.cleanupTick)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := rl.now()
			for key, c := range rl.clients {
				if now.Sub(c.lastReset) > rl.window*2 {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Allow consumes a token for key. When the budget is spent it reports
// how long until the window resets.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	c, exists := rl.clients[key]

	if !exists || now.Sub(c.lastReset) >= rl.window {
		rl.clients[key] = &client{tokens: rl.limit - 1, lastReset: now}
		return true, 0
	}

	if c.tokens > 0 {
		c.tokens--
		return true, 0
	}
	return false, rl.window - now.Sub(c.lastReset)
}

// Remaining returns the number of remaining requests for the given key
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, exists := rl.clients[key]
	if !exists || rl.now().Sub(c.lastReset) >= rl.window {
		return rl.limit
	}
	return c.tokens
}

// Throttle limits authenticated principals with authed and everyone else,
// by client IP, with anon. It must run after the authentication middleware
// of its route group so the principal is known.
func Throttle(anon, authed *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter, key := anon, "ip:"+c.ClientIP()
		if principal := c.GetString(logger.GinPrincipalKey); principal != "" {
			limiter, key = authed, principal
		}
		if limiter == nil {
			c.Next()
			return
		}

		ok, retryAfter := limiter.Allow(key)
		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			c.Header("X-RateLimit-Remaining", "0")
			abortWithError(c, http.StatusTooManyRequests, dto.ErrCodeRateLimited, "Too many requests")
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))
		c.Next()
	}
}
