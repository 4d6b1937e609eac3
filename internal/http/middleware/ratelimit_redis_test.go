package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	return redis.NewClient(&redis.Options{Addr: addr})
}

func TestRedisRateLimitBlocksAfterMax(t *testing.T) {
	client := testRedis(t)
	InitRedis(client)
	t.Cleanup(func() { InitRedis(nil) })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	// short window so runs don't interfere with each other
	r.GET("/ping", RedisRateLimit(3, 2*time.Second), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	ip := fmt.Sprintf("10.0.0.%d", time.Now().UnixNano()%250)
	do := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Forwarded-For", ip)
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 3; i++ {
		if code := do(); code != http.StatusOK {
			t.Fatalf("request %d blocked early: %d", i+1, code)
		}
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Fatalf("request over limit = %d; want 429", code)
	}
}

func TestGiftRateLimitPerUser(t *testing.T) {
	client := testRedis(t)
	InitRedis(client)
	t.Cleanup(func() { InitRedis(nil) })

	gin.SetMode(gin.TestMode)
	userA := time.Now().UnixNano()
	userB := userA + 1

	newRouter := func(userID int64) *gin.Engine {
		r := gin.New()
		r.POST("/send",
			func(c *gin.Context) { c.Set("user_id", userID) },
			GiftRateLimit(2, 2*time.Second),
			func(c *gin.Context) { c.Status(http.StatusOK) },
		)
		return r
	}
	do := func(r *gin.Engine) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/send", nil))
		return w
	}

	ra := newRouter(userA)
	for i := 0; i < 2; i++ {
		if w := do(ra); w.Code != http.StatusOK {
			t.Fatalf("send %d blocked early: %d", i+1, w.Code)
		}
	}
	w := do(ra)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("send over limit = %d; want 429", w.Code)
	}
	if w.Header().Get("X-GiftRateLimit-Remaining") != "0" {
		t.Fatalf("remaining header = %q; want 0", w.Header().Get("X-GiftRateLimit-Remaining"))
	}

	// a different user is not affected
	if w := do(newRouter(userB)); w.Code != http.StatusOK {
		t.Fatalf("other user blocked: %d", w.Code)
	}
}

func TestRateLimitersFailOpenWithoutRedis(t *testing.T) {
	InitRedis(nil)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", RedisRateLimit(1, time.Second), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d blocked without redis: %d", i+1, w.Code)
		}
	}
}
