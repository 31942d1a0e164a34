package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
)

// RateLimiter enforces a per-IP request budget per minute. With Redis it
// counts in a shared minute window; without it each process falls back
// to a local token bucket.
type RateLimiter struct {
	redis     *redis.Client
	perMinute int

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	tokens int
	last   time.Time
}

// NewRateLimiter creates a limiter allowing perMinute requests per IP.
// A nil Redis client selects the in-memory fallback; perMinute <= 0
// disables limiting.
func NewRateLimiter(rc *redis.Client, perMinute int) *RateLimiter {
	return &RateLimiter{
		redis:     rc,
		perMinute: perMinute,
		buckets:   make(map[string]*bucket),
	}
}

// Handler returns the fiber middleware.
func (l *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if l.perMinute <= 0 {
			return c.Next()
		}
		ip := c.IP()
		if ip == "" {
			ip = "unknown"
		}
		if !l.allow(c.UserContext(), ip) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded"})
		}
		return c.Next()
	}
}

func (l *RateLimiter) allow(ctx context.Context, ip string) bool {
	if l.redis != nil {
		// Fixed minute window: a burst straddling the boundary can reach
		// 2x perMinute. The local fallback below is a real token bucket,
		// so the two modes differ in worst-case burst.
		key := "ratelimit:" + ip + ":" + time.Now().Format("1504")
		n, err := l.redis.Incr(ctx, key).Result()
		if err == nil {
			if n == 1 {
				l.redis.Expire(ctx, key, time.Minute)
			}
			return n <= int64(l.perMinute)
		}
		// Redis down: fall through to the local bucket.
	}
	return l.allowLocal(ip)
}

func (l *RateLimiter) allowLocal(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[ip]
	now := time.Now()
	if !ok {
		l.buckets[ip] = &bucket{tokens: l.perMinute - 1, last: now}
		return true
	}
	refill := int(now.Sub(b.last).Minutes() * float64(l.perMinute))
	if refill > 0 {
		b.tokens += refill
		if b.tokens > l.perMinute {
			b.tokens = l.perMinute
		}
		b.last = now
	}
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}
