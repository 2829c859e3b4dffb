package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/WebuildSoft/myrifa-sub001/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware limits checkout requests per client IP. With a
// Redis address configured the counter is shared across instances via
// INCR with a one minute expiry; otherwise each instance keeps its own
// token bucket.
func RateLimitMiddleware(cfg *config.Config) gin.HandlerFunc {
	if !cfg.RateLimit.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	perMinute := cfg.RateLimit.RequestsPerMinute
	if perMinute < 1 {
		// A zero interval would make rate.Every panic.
		perMinute = 1
	}
	if cfg.RateLimit.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.RedisAddr,
			Password: cfg.RateLimit.RedisPassword,
		})
		return redisRateLimit(client, perMinute)
	}
	return localRateLimit(perMinute)
}

func redisRateLimit(client *redis.Client, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:checkout:" + c.ClientIP()

		count, err := client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			// Redis being down must not take checkout down with it.
			slog.Error("Rate limit: redis unavailable, allowing request", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(c.Request.Context(), key, time.Minute)
		}
		if count > int64(perMinute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, try again shortly"})
			return
		}
		c.Next()
	}
}

// limiterIdleTTL is how long an IP can stay silent before its bucket
// is dropped from the map.
const limiterIdleTTL = 10 * time.Minute

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func localRateLimit(perMinute int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*ipLimiter)
	)

	// Evict idle entries so the map does not grow for the lifetime of
	// the process.
	go func() {
		for range time.Tick(limiterIdleTTL) {
			mu.Lock()
			for ip, entry := range limiters {
				if time.Since(entry.lastSeen) > limiterIdleTTL {
					delete(limiters, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		entry, ok := limiters[ip]
		if !ok {
			entry = &ipLimiter{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)}
			limiters[ip] = entry
		}
		entry.lastSeen = time.Now()
		mu.Unlock()

		if !entry.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, try again shortly"})
			return
		}
		c.Next()
	}
}
