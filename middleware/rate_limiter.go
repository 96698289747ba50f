package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const rateLimitKeyPrefix = "ratelimit:"

// rateLimiterStore holds a map of IP addresses to their rate limiters.
// When shared is set, the per-minute count lives in Redis so every
// instance enforces the same limit; the local limiters only take over
// while Redis is unreachable.
type rateLimiterStore struct {
	limiters map[string]*rate.Limiter
	perMin   int
	shared   *redis.Client
	now      func() time.Time
	mu       sync.Mutex
}

func newRateLimiterStore(perMin int, shared *redis.Client) *rateLimiterStore {
	if perMin < 1 {
		perMin = 1
	}
	return &rateLimiterStore{
		limiters: make(map[string]*rate.Limiter),
		perMin:   perMin,
		shared:   shared,
		now:      time.Now,
	}
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[ip]
	if !exists {
		// perMin requests per minute, all of them available as burst.
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)
		s.limiters[ip] = limiter
	}
	return limiter
}

func (s *rateLimiterStore) allow(ctx context.Context, ip string) bool {
	if s.shared != nil {
		allowed, err := s.allowShared(ctx, ip)
		if err == nil {
			return allowed
		}
		zap.L().Warn("shared rate limit unavailable, using local limiter", zap.String("ip", ip), zap.Error(err))
	}
	return s.getLimiter(ip).Allow()
}

// allowShared counts the request in a one-minute Redis window.
func (s *rateLimiterStore) allowShared(ctx context.Context, ip string) (bool, error) {
	key := fmt.Sprintf("%s%s:%d", rateLimitKeyPrefix, ip, s.now().Unix()/60)

	var count *redis.IntCmd
	_, err := s.shared.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, time.Minute)
		return nil
	})
	if err != nil {
		return false, err
	}
	return count.Val() <= int64(s.perMin), nil
}

// RateLimitMiddleware limits requests per IP address to perMin per minute.
// shared may be nil, in which case limits are kept per instance.
func RateLimitMiddleware(perMin int, shared *redis.Client) gin.HandlerFunc {
	store := newRateLimiterStore(perMin, shared)
	return func(c *gin.Context) {
		ip := clientIP(c)
		if !store.allow(c.Request.Context(), ip) {
			zap.L().Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
