package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiterConfig holds the configuration for the rate limiter
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters keeps one token bucket per client IP.
type clientLimiters struct {
	config  RateLimiterConfig
	clients map[string]*clientLimiter
	mu      sync.Mutex
}

const idleLimiterTTL = 10 * time.Minute

func (l *clientLimiters) get(ip string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, client := range l.clients {
		if now.Sub(client.lastSeen) > idleLimiterTTL {
			delete(l.clients, key)
		}
	}

	client, ok := l.clients[ip]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.Burst)}
		l.clients[ip] = client
	}
	client.lastSeen = now
	return client.limiter
}

// NewRateLimiterMiddleware limits each client IP to the configured rate.
func NewRateLimiterMiddleware(config RateLimiterConfig) gin.HandlerFunc {
	limiters := &clientLimiters{config: config, clients: make(map[string]*clientLimiter)}

	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP(), time.Now()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
