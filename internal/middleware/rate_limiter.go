package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/vahid343/food-save-city/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// limiter is a per-IP sliding-window counter shared by the login and general
// API limiters.
type limiter struct {
	mu      sync.Mutex
	entries map[string]*window
	limit   int
	span    time.Duration
	message string
}

type window struct {
	count int
	until time.Time
}

func newLimiter(limit int, span time.Duration, message string) *limiter {
	l := &limiter{
		entries: make(map[string]*window),
		limit:   limit,
		span:    span,
		message: message,
	}
	go l.purgeLoop()
	return l
}

func (l *limiter) allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.entries[ip]
	if !ok || now.After(w.until) {
		w = &window{until: now.Add(l.span)}
		l.entries[ip] = w
	}
	w.count++
	return w.count <= l.limit, w.until
}

// purgeLoop evicts expired windows so IPs that never return do not accumulate.
func (l *limiter) purgeLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		purged := 0
		l.mu.Lock()
		for ip, w := range l.entries {
			if now.After(w.until) {
				delete(l.entries, ip)
				purged++
			}
		}
		remaining := len(l.entries)
		l.mu.Unlock()
		if purged > 0 {
			log.Debug().Int("purged", purged).Int("remaining", remaining).Msg("rate limiter entries purged")
		}
	}
}

func (l *limiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, until := l.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", until.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.message))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return newLimiter(20, time.Minute, "Too many login attempts. Try again in a minute.").middleware()
}

// RateLimiter returns a general-purpose per-IP limiter for the whole API.
func RateLimiter(limit int, span time.Duration) gin.HandlerFunc {
	return newLimiter(limit, span, "Too many requests. Try again shortly.").middleware()
}
