package ratelimiter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T, limit int) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	rl, err := NewRateLimiter(rdb, "test:login", limit, time.Minute)
	require.NoError(t, err)
	rl.now = func() time.Time { return time.Date(2025, 1, 1, 12, 0, 30, 0, time.UTC) }
	return rl, mr
}

func TestRateLimiter_Allow(t *testing.T) {
	rl, mr := newLimiter(t, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := rl.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "call %d should pass", i+1)
	}
	ok, err := rl.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok, "third call should be blocked")

	ok, err = rl.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok, "other keys have their own quota")

	// the window key expires with the window
	for _, k := range mr.Keys() {
		assert.Greater(t, mr.TTL(k), time.Duration(0))
	}
}

func TestRateLimiter_NextWindowResets(t *testing.T) {
	rl, _ := newLimiter(t, 1)
	ctx := context.Background()

	ok, _ := rl.Allow(ctx, "ip")
	assert.True(t, ok)
	ok, _ = rl.Allow(ctx, "ip")
	assert.False(t, ok)

	rl.now = func() time.Time { return time.Date(2025, 1, 1, 12, 1, 30, 0, time.UTC) }
	ok, err := rl.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRateLimiter_StoreDown(t *testing.T) {
	rl, mr := newLimiter(t, 1)
	mr.Close()

	_, err := rl.Allow(context.Background(), "ip")
	assert.Error(t, err)
}

func TestNewRateLimiter_Invalid(t *testing.T) {
	_, err := NewRateLimiter(nil, "p", 1, time.Second)
	assert.Error(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer rdb.Close()
	_, err = NewRateLimiter(rdb, "p", 0, time.Second)
	assert.Error(t, err)
	_, err = NewRateLimiter(rdb, "p", 1, 0)
	assert.Error(t, err)
}

type stubLimiter struct {
	ok  bool
	err error
}

func (s stubLimiter) Allow(context.Context, string) (bool, error) { return s.ok, s.err }

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		limiter RateLimiterInterface
		want    int
	}{
		{"no limiter", nil, http.StatusOK},
		{"within quota", stubLimiter{ok: true}, http.StatusOK},
		{"over quota", stubLimiter{ok: false}, http.StatusTooManyRequests},
		{"store error lets through", stubLimiter{err: errors.New("down")}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/user/login", Middleware(tt.limiter), func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/user/login", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
