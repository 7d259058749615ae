package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoginRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// 200ms window, at most 2 attempts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := gin.New()
	router.Use(LoginRateLimit(ctx, 2, 200*time.Millisecond))
	router.POST("/login", func(c *gin.Context) {
		c.String(200, "ok")
	})

	doReq := func(ip, accept string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/login", nil)
		req.Header.Set("X-Real-IP", ip)
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		req.RemoteAddr = ip + ":12345"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w1 := doReq("192.168.1.1", "")
	w2 := doReq("192.168.1.1", "")
	w3 := doReq("192.168.1.1", "")

	assert.Equal(t, 200, w1.Code)
	assert.Equal(t, 200, w2.Code)
	assert.Equal(t, http.StatusTooManyRequests, w3.Code)
	assert.Contains(t, w3.Body.String(), "Too many")
	assert.Contains(t, w3.Header().Get("Content-Type"), "application/json")

	// browsers get plain text
	w4 := doReq("192.168.1.1", "text/html,application/xhtml+xml")
	assert.Equal(t, http.StatusTooManyRequests, w4.Code)
	assert.Contains(t, w4.Header().Get("Content-Type"), "text/plain")

	// other IPs are independent
	assert.Equal(t, 200, doReq("192.168.1.2", "").Code)
	assert.Equal(t, 200, doReq("192.168.1.2", "").Code)

	// window expiry
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, 200, doReq("192.168.1.1", "").Code)
}

func TestAttemptLimiter_Sweep(t *testing.T) {
	l := newAttemptLimiter(1, time.Minute)
	now := time.Now()

	assert.True(t, l.allow("a", now))
	assert.False(t, l.allow("a", now.Add(time.Second)))
	assert.True(t, l.allow("b", now))

	l.sweep(now.Add(2 * time.Minute))
	assert.Empty(t, l.store)
	assert.True(t, l.allow("a", now.Add(2*time.Minute)))
}

func TestAttemptLimiter_JanitorStops(t *testing.T) {
	l := newAttemptLimiter(1, 10*time.Millisecond)
	assert.True(t, l.allow("a", time.Now()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.janitor(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		l.mu.Lock()
		defer l.mu.Unlock()
		return len(l.store) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor still running after cancel")
	}
}
