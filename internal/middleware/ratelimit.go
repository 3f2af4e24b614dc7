package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"portfolio/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// CounterStore tracks decaying request counters per key. Counts reset at
// window boundaries, are never negative, and must be safe under concurrent
// increments for the same key.
type CounterStore interface {
	// Incr increments the counter for key within the current window and
	// returns the new count plus the time remaining until the window resets.
	Incr(ctx context.Context, key string, window time.Duration) (count int64, retryAfter time.Duration, err error)
}

// MemoryStore is a fixed-window counter map for single-process deployments.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	done    chan struct{}
	once    sync.Once
}

type windowEntry struct {
	count   int64
	resetAt time.Time
}

// NewMemoryStore creates a MemoryStore and starts a background sweep of
// expired windows.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*windowEntry),
		done:    make(chan struct{}),
	}
	go s.sweep(2 * time.Minute)
	return s
}

func (s *MemoryStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok || now.After(ent.resetAt) {
		ent = &windowEntry{resetAt: now.Add(window)}
		s.entries[key] = ent
	}
	ent.count++
	return ent.count, ent.resetAt.Sub(now), nil
}

func (s *MemoryStore) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for key, ent := range s.entries {
				if now.After(ent.resetAt) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Close stops the background sweep.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.done) })
}

// RedisStore is a shared counter store for multi-process deployments.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps a Redis client as a CounterStore.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	// INCR and set EXPIRE if new
	cnt, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	if cnt == 1 {
		if err := s.rdb.Expire(ctx, key, window).Err(); err != nil {
			return cnt, window, err
		}
		return cnt, window, nil
	}

	ttl, err := s.rdb.PTTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		return cnt, window, nil
	}
	return cnt, ttl, nil
}

// RateLimit returns a Fiber middleware enforcing `limit` requests per
// `window`, keyed by endpoint name plus proxy-aware client IP. Store errors
// fail open so an unavailable backing store never blocks traffic; exceeding
// the limit yields a 429 envelope with a retry-after hint. None of the later
// pipeline stages run for a denied request.
func RateLimit(store CounterStore, limit int, window time.Duration, name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("rl:%s:ip:%s", name, ClientIP(c))

		count, retryAfter, err := store.Incr(c.UserContext(), key, window)
		if err != nil {
			Logger.WarnContext(c.UserContext(), "rate limit store unavailable, failing open",
				slog.String("resource", name), slog.String("error", err.Error()))
			return c.Next()
		}

		if count > int64(limit) {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(retryAfter.Seconds())+1))
			return models.RespondError(c, fiber.StatusTooManyRequests,
				models.NewRateLimitedError(retryAfter))
		}
		return c.Next()
	}
}

// ParsePolicy parses limit strings like "3/minute" or "100/hour" into a
// count and window.
func ParsePolicy(policy string) (int, time.Duration, error) {
	countStr, unit, ok := strings.Cut(strings.TrimSpace(policy), "/")
	if !ok {
		return 0, 0, fmt.Errorf("invalid rate limit policy %q", policy)
	}

	count, err := strconv.Atoi(strings.TrimSpace(countStr))
	if err != nil || count <= 0 {
		return 0, 0, fmt.Errorf("invalid rate limit count in %q", policy)
	}

	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "second":
		return count, time.Second, nil
	case "minute":
		return count, time.Minute, nil
	case "hour":
		return count, time.Hour, nil
	case "day":
		return count, 24 * time.Hour, nil
	default:
		return 0, 0, fmt.Errorf("invalid rate limit window in %q", policy)
	}
}
