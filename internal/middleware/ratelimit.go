package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterStore struct {
	mu         sync.Mutex
	entries    map[string]*limiterEntry
	limit      rate.Limit
	burst      int
	staleAfter time.Duration
}

func (s *limiterStore) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if e, ok := s.entries[key]; ok {
		e.lastSeen = now
		return e.limiter
	}
	// sweep on insert so idle clients do not pile up
	for k, e := range s.entries {
		if now.Sub(e.lastSeen) > s.staleAfter {
			delete(s.entries, k)
		}
	}
	lim := rate.NewLimiter(s.limit, s.burst)
	s.entries[key] = &limiterEntry{limiter: lim, lastSeen: now}
	return lim
}

// RateLimit is a per-IP token bucket. rps <= 0 disables it. /health and any
// path in skip are never limited.
func RateLimit(rps float64, burst int, skip ...string) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}
	store := &limiterStore{
		entries:    make(map[string]*limiterEntry),
		limit:      rate.Limit(rps),
		burst:      burst,
		staleAfter: 10 * time.Minute,
	}
	exempt := map[string]bool{"/health": true}
	for _, path := range skip {
		exempt[path] = true
	}
	return func(c *gin.Context) {
		if exempt[c.Request.URL.Path] {
			c.Next()
			return
		}
		if !store.get(c.ClientIP()).Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "too many requests",
			})
			return
		}
		c.Next()
	}
}
