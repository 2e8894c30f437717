package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func testRouter(t *testing.T, limit int) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/limited", NewRateLimiter(client, limit).Handle(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, mr
}

func get(router *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/limited", nil)
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterAllowsUnderLimit(t *testing.T) {
	router, _ := testRouter(t, 3)

	for i := 0; i < 3; i++ {
		if code := get(router); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, code)
		}
	}
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	router, _ := testRouter(t, 2)

	get(router)
	get(router)
	if code := get(router); code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after limit, got %d", code)
	}
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	router, mr := testRouter(t, 1)

	if code := get(router); code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", code)
	}
	if code := get(router); code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", code)
	}

	// A new fixed window means a new counter key.
	mr.FlushAll()
	if code := get(router); code != http.StatusOK {
		t.Errorf("after window reset: expected 200, got %d", code)
	}
}

func TestRateLimiterDisabledWhenNonPositive(t *testing.T) {
	router, _ := testRouter(t, 0)

	for i := 0; i < 10; i++ {
		if code := get(router); code != http.StatusOK {
			t.Fatalf("request %d: expected 200 with limiter disabled, got %d", i+1, code)
		}
	}
}
