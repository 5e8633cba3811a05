package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
)

const (
	// defaultMaxRequests is the default number of allowed requests per window.
	defaultMaxRequests = 100
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
	// defaultCacheSize bounds the number of clients tracked in memory.
	defaultCacheSize = 10000

	rateLimitKeyPrefix = "ratelimit:"
)

// RateLimitStore counts hits per key inside a fixed window.
type RateLimitStore interface {
	// Hit records one request and returns the number of requests seen in the current window.
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter provides IP-based fixed window rate limiting.
type RateLimiter struct {
	store       RateLimitStore
	maxRequests int64
	window      time.Duration
	enabled     bool
}

// RateLimiterConfig holds the rate limiter settings.
type RateLimiterConfig struct {
	Enabled     bool
	MaxRequests int
	Window      time.Duration
}

// NewRateLimiter creates a rate limiter backed by the given store.
func NewRateLimiter(store RateLimitStore, cfg RateLimiterConfig) *RateLimiter {
	maxRequests := int64(cfg.MaxRequests)
	if maxRequests <= 0 {
		maxRequests = defaultMaxRequests
	}
	window := cfg.Window
	if window <= 0 {
		window = defaultWindowDuration
	}

	return &RateLimiter{
		store:       store,
		maxRequests: maxRequests,
		window:      window,
		enabled:     cfg.Enabled && store != nil,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.enabled {
			c.Next()
			return
		}

		// Get client IP
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		count, err := rl.store.Hit(c.Request.Context(), rateLimitKeyPrefix+clientIP, rl.window)
		if err != nil {
			// The API stays available when the limiter backend is down.
			LoggerFromContext(c).Warn("Rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if count > rl.maxRequests {
			c.Header("Retry-After", fmt.Sprintf("%d", int(rl.window.Seconds())))
			writeError(c, http.StatusTooManyRequests, "Too Many Requests",
				"Muitas requisições. Tente novamente mais tarde.", nil)
			return
		}

		c.Next()
	}
}

// RedisRateLimitStore keeps counters in Redis so limits hold across instances.
type RedisRateLimitStore struct {
	client redis.UniversalClient
}

// NewRedisRateLimitStore creates a Redis-backed store.
func NewRedisRateLimitStore(client redis.UniversalClient) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client}
}

// Hit increments the counter and starts its expiry on the first hit of a window.
// Both commands run in one MULTI block, and EXPIRE NX leaves a running window untouched.
func (s *RedisRateLimitStore) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to update rate limit counter: %w", err)
	}
	return incr.Val(), nil
}

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int64
	resetTime time.Time
}

// MemoryRateLimitStore keeps counters in a bounded LRU cache; the least recently
// seen clients are evicted first.
type MemoryRateLimitStore struct {
	mu      sync.Mutex
	entries *lru.Cache[string, *rateLimitEntry]
	now     func() time.Time
}

// NewMemoryRateLimitStore creates an in-memory store tracking at most size clients.
func NewMemoryRateLimitStore(size int) (*MemoryRateLimitStore, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	entries, err := lru.New[string, *rateLimitEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit cache: %w", err)
	}
	return &MemoryRateLimitStore{entries: entries, now: time.Now}, nil
}

// Hit records a request for key.
func (s *MemoryRateLimitStore) Hit(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	entry, exists := s.entries.Get(key)
	if !exists || now.After(entry.resetTime) {
		// First request in a fresh window
		s.entries.Add(key, &rateLimitEntry{
			attempts:  1,
			resetTime: now.Add(window),
		})
		return 1, nil
	}

	entry.attempts++
	return entry.attempts, nil
}

// Reset clears the store state.
func (s *MemoryRateLimitStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries.Purge()
}
