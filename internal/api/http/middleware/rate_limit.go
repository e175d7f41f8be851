package middleware

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const rateKeyPrefix = "deck:ratelimit:" // deck:ratelimit:{client_ip}:{minute}

// RateLimit caps each client IP to rpm requests per minute. When a redis
// client is provided the counter is shared across instances (fixed window
// via INCR + EXPIRE); without one it falls back to per-process limiters.
// A zero rpm disables limiting.
func RateLimit(client *redis.Client, rpm int) gin.HandlerFunc {
	if rpm <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if client == nil {
		return localRateLimit(rpm)
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("%s%s:%d", rateKeyPrefix, c.ClientIP(), time.Now().Unix()/60)

		pipe := client.Pipeline()
		count := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, time.Minute)
		if _, err := pipe.Exec(ctx); err != nil {
			// Redis being down should not take the API down with it.
			log.Printf("rate limit: redis unavailable: %v", err)
			c.Next()
			return
		}

		if count.Val() > int64(rpm) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "too many requests",
			})
			return
		}

		c.Next()
	}
}

func localRateLimit(rpm int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[ip]
		if !ok {
			l = rate.NewLimiter(rate.Limit(float64(rpm)/60), rpm)
			limiters[ip] = l
		}
		return l
	}

	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "too many requests",
			})
			return
		}
		c.Next()
	}
}
