package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func limitedRouter(l *RateLimiter) *gin.Engine {
	r := gin.New()
	r.GET("/limited", l.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func hit(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
	return w
}

func TestRateLimiter_Disabled(t *testing.T) {
	var nilLimiter *RateLimiter
	for _, l := range []*RateLimiter{nilLimiter, NewRateLimiter(nil, 1, time.Minute, nil)} {
		r := limitedRouter(l)
		for range 3 {
			w := hit(r)
			assert.Equal(t, http.StatusNoContent, w.Code)
			assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
		}
	}
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	r := limitedRouter(NewRateLimiter(client, 1, time.Minute, nil))
	for range 2 {
		assert.Equal(t, http.StatusNoContent, hit(r).Code)
	}
}
