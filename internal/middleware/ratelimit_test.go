package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/empower_finance_app/internal/dto"
	"github.com/SscSPs/empower_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateLimitedRouter(t *testing.T, rate string) *gin.Engine {
	t.Helper()
	lim, err := middleware.NewMemoryRateLimiter(rate)
	require.NoError(t, err)

	r := gin.New()
	// Stand-in for the auth middleware: the caller is taken from a test header.
	r.Use(func(c *gin.Context) {
		if userID := c.GetHeader("X-Test-User"); userID != "" {
			c.Request = c.Request.WithContext(middleware.WithUserID(c.Request.Context(), userID))
		}
		c.Next()
	})
	r.Use(middleware.RateLimit(lim))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func ping(r *gin.Engine, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if userID != "" {
		req.Header.Set("X-Test-User", userID)
	}
	return serve(r, req)
}

func TestNewMemoryRateLimiter_InvalidRate(t *testing.T) {
	_, err := middleware.NewMemoryRateLimiter("lots")
	assert.Error(t, err)
}

func TestRateLimit_Headers(t *testing.T) {
	r := rateLimitedRouter(t, "5-M")

	w := ping(r, "user-1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
}

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	r := rateLimitedRouter(t, "2-M")

	assert.Equal(t, http.StatusOK, ping(r, "user-1").Code)
	assert.Equal(t, http.StatusOK, ping(r, "user-1").Code)
	w := ping(r, "user-1")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, dto.ErrorKindRateLimited, decodeError(t, w).Kind)
}

func TestRateLimit_KeyedPerUser(t *testing.T) {
	r := rateLimitedRouter(t, "1-M")

	assert.Equal(t, http.StatusOK, ping(r, "user-1").Code)
	assert.Equal(t, http.StatusTooManyRequests, ping(r, "user-1").Code)
	assert.Equal(t, http.StatusOK, ping(r, "user-2").Code, "a different user has its own budget")
	assert.Equal(t, http.StatusOK, ping(r, "").Code, "anonymous callers are keyed by client IP")
	assert.Equal(t, http.StatusTooManyRequests, ping(r, "").Code)
}
