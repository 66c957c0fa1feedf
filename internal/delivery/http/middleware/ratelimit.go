package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	h "meetgrid/internal/delivery/http/helpers"
)

// WindowCounter counts hits per key in fixed windows.
type WindowCounter interface {
	// Incr adds one hit to key and returns the hits in the current window.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter is a WindowCounter shared by every instance using the same Redis.
type RedisCounter struct {
	rdb    *redis.Client
	prefix string
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func NewRedisCounter(rdb *redis.Client, prefix string) *RedisCounter {
	if prefix = strings.TrimSpace(prefix); prefix == "" {
		prefix = "rl"
	}
	return &RedisCounter{rdb: rdb, prefix: prefix}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, c.rdb, []string{c.prefix + ":" + key}, window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}

// MemoryCounter is a process-local WindowCounter for single-instance deployments.
// Expired visitors are swept at most once per window.
type MemoryCounter struct {
	mu       sync.Mutex
	now      func() time.Time
	visitors map[string]*visitor
	sweepAt  time.Time
}

type visitor struct {
	count int64
	reset time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{now: time.Now, visitors: make(map[string]*visitor)}
}

func (c *MemoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if !now.Before(c.sweepAt) {
		for k, v := range c.visitors {
			if !now.Before(v.reset) {
				delete(c.visitors, k)
			}
		}
		c.sweepAt = now.Add(window)
	}
	v := c.visitors[key]
	if v == nil || !now.Before(v.reset) {
		v = &visitor{reset: now.Add(window)}
		c.visitors[key] = v
	}
	v.count++
	return v.count, nil
}

// RateLimit rejects clients exceeding limit requests per window with 429.
// Clients are keyed on the peer address, or on the first X-Forwarded-For hop
// when trustProxy is set. Counter failures are logged and let the request through.
func RateLimit(counter WindowCounter, limit int, window time.Duration, trustProxy bool, logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count, err := counter.Incr(r.Context(), clientKey(r, trustProxy), window)
		if err != nil {
			logger.WarnContext(r.Context(), "rate limiter error", "err", err)
			next.ServeHTTP(w, r)
			return
		}
		if count > int64(limit) {
			w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
			h.WriteJSONError(w, http.StatusTooManyRequests, h.ErrCodeTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
			first, _, _ := strings.Cut(ip, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
