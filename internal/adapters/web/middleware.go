package web

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jonboulle/clockwork"

	"quacker/internal/domain"
	"quacker/internal/usecases"
	"quacker/pkg/log"
)

// RateLimiter caps quack posts per IP within a sliding window.
type RateLimiter struct {
	mu     sync.Mutex
	posts  map[string][]time.Time
	limit  int
	window time.Duration
	clock  clockwork.Clock
}

// NewRateLimiter creates a new rate limiter. A limit <= 0 returns nil, which allows everything.
func NewRateLimiter(limit int, window time.Duration, clock clockwork.Clock) *RateLimiter {
	if limit <= 0 {
		return nil
	}
	return &RateLimiter{
		posts:  make(map[string][]time.Time),
		limit:  limit,
		window: window,
		clock:  clock,
	}
}

// Allow records a post for ip and reports whether it is within the limit.
// Rejected posts are not recorded.
func (rl *RateLimiter) Allow(ip string) bool {
	if rl == nil {
		return true
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()
	recent := pruneBefore(rl.posts[ip], now.Add(-rl.window))
	if len(recent) >= rl.limit {
		rl.posts[ip] = recent
		return false
	}
	rl.posts[ip] = append(recent, now)
	return true
}

// Cleanup drops IPs with no posts inside the window.
func (rl *RateLimiter) Cleanup() {
	if rl == nil {
		return
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.clock.Now().Add(-rl.window)
	for ip, ts := range rl.posts {
		if recent := pruneBefore(ts, cutoff); len(recent) == 0 {
			delete(rl.posts, ip)
		} else {
			rl.posts[ip] = recent
		}
	}
}

// Tracked returns how many IPs currently have recorded posts.
func (rl *RateLimiter) Tracked() int {
	if rl == nil {
		return 0
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.posts)
}

// RunCleanup calls Cleanup every interval until stop is closed.
func (rl *RateLimiter) RunCleanup(interval time.Duration, stop <-chan struct{}) {
	if rl == nil {
		return
	}
	ticker := rl.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.Chan():
			rl.Cleanup()
		case <-stop:
			return
		}
	}
}

func pruneBefore(ts []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(ts) && !ts[i].After(cutoff) {
		i++
	}
	return ts[i:]
}

// Middleware rejects posts over the limit with 429.
func (rl *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rl.Allow(c.IP()) {
			log.GlobalWarnCtx(c.UserContext(), "post rate limited", "ip", c.IP())
			return c.Status(fiber.StatusTooManyRequests).JSON(errorResponse{Error: friendlyError(domain.ErrRateLimited)})
		}
		return c.Next()
	}
}

// RequestIDConfig returns the configuration for Fiber's requestid middleware.
// Uses X-Request-ID header, generates UUID if not present.
func RequestIDConfig() requestid.Config {
	return requestid.Config{
		Header:     "X-Request-ID",
		ContextKey: "requestid",
	}
}

// RequestContextMiddleware copies the request ID and the session user's handle
// into the request context for pkg/log. Must run after requestid.New().
func RequestContextMiddleware(users usecases.UserContext) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if id, ok := c.Locals("requestid").(string); ok && id != "" {
			ctx = log.WithRequestID(ctx, id)
		}
		if users != nil {
			if u, ok := users.Current(); ok {
				ctx = log.WithUser(ctx, u.Handle)
			}
		}
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// RequestLoggerMiddleware logs each request as one structured entry, timed with clock.
// 5xx logs at ERROR, 4xx at WARN, everything else at INFO.
func RequestLoggerMiddleware(clock clockwork.Clock) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := clock.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		fields := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency_ms", clock.Since(start).Milliseconds(),
			"ip", c.IP(),
		}
		if err != nil {
			fields = append(fields, "error", err.Error())
		}

		ctx := c.UserContext()
		switch {
		case status >= 500:
			log.GlobalErrorCtx(ctx, "request completed", fields...)
		case status >= 400:
			log.GlobalWarnCtx(ctx, "request completed", fields...)
		default:
			log.GlobalInfoCtx(ctx, "request completed", fields...)
		}
		return err
	}
}
