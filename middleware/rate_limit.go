package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
	clients map[string]*client
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: 10 * time.Minute,
		clients: make(map[string]*client),
	}
}

func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[ip]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[ip] = cl
	}
	cl.lastSeen = now

	// evict idle buckets opportunistically
	if len(rl.clients) > 1024 {
		for k, v := range rl.clients {
			if now.Sub(v.lastSeen) > rl.idleTTL {
				delete(rl.clients, k)
			}
		}
	}
	return cl.limiter.AllowN(now, 1)
}

// Middleware answers 429 once a client exhausts its bucket.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "too many requests"})
			return
		}
		c.Next()
	}
}

// Noop is used when rate limiting is disabled.
func Noop() gin.HandlerFunc {
	return func(c *gin.Context) { c.Next() }
}
