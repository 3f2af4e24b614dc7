package middleware

import (
	"context"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_FixedWindow(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	for i := int64(1); i <= 4; i++ {
		count, retryAfter, err := store.Incr(ctx, "rl:test:ip:1.2.3.4", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, count)
		assert.Greater(t, retryAfter, time.Duration(0))
		assert.LessOrEqual(t, retryAfter, time.Minute)
	}

	// Independent key, independent counter.
	count, _, err := store.Incr(ctx, "rl:test:ip:5.6.7.8", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryStore_WindowReset(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	count, _, err := store.Incr(ctx, "k", 30*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, _, err = store.Incr(ctx, "k", 30*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)

	count, _, err = store.Incr(ctx, "k", 30*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "counter must reset at the window boundary")
}

func TestMemoryStore_ConcurrentIncrements(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			_, _, _ = store.Incr(ctx, "shared", time.Minute)
		}()
	}
	wg.Wait()

	count, _, err := store.Incr(ctx, "shared", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(goroutines+1), count, "no increments may be lost")
}

func TestRedisStore_Incr(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(rdb)
	ctx := context.Background()

	count, retryAfter, err := store.Incr(ctx, "rl:contact:ip:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, time.Minute, retryAfter)

	count, retryAfter, err = store.Incr(ctx, "rl:contact:ip:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Greater(t, retryAfter, time.Duration(0))

	// Window expiry resets the counter.
	mr.FastForward(61 * time.Second)
	count, _, err = store.Incr(ctx, "rl:contact:ip:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRateLimit_Middleware(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	defer store.Close()

	app := fiber.New()
	app.Post("/contact", RateLimit(store, 3, time.Minute, "contact"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/contact", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode, "request %d", i+1)
	}

	req := httptest.NewRequest("POST", "/contact", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderRetryAfter))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"RATE_LIMITED"`)
	assert.Contains(t, string(body), `"retry_after"`)
}

func TestRateLimit_IndependentClients(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	defer store.Close()

	app := fiber.New()
	app.Post("/c", RateLimit(store, 1, time.Minute, "c"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	first := httptest.NewRequest("POST", "/c", nil)
	first.Header.Set("CF-Connecting-IP", "203.0.113.1")
	resp, err := app.Test(first)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	again := httptest.NewRequest("POST", "/c", nil)
	again.Header.Set("CF-Connecting-IP", "203.0.113.1")
	resp, err = app.Test(again)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	other := httptest.NewRequest("POST", "/c", nil)
	other.Header.Set("CF-Connecting-IP", "203.0.113.2")
	resp, err = app.Test(other)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	count, window, err := ParsePolicy("3/minute")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, time.Minute, window)

	count, window, err = ParsePolicy("100/hour")
	require.NoError(t, err)
	assert.Equal(t, 100, count)
	assert.Equal(t, time.Hour, window)

	for _, bad := range []string{"", "minute", "0/minute", "-1/minute", "3/fortnight", "x/minute"} {
		_, _, err := ParsePolicy(bad)
		assert.Error(t, err, "policy %q", bad)
	}
}
