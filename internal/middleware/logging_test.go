package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/empower_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger))
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusAccepted)
	})

	t.Run("PropagatesRequestID", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "req-123")

		w := serve(r, req)

		assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "Request completed", entry["msg"])
		assert.Equal(t, "req-123", entry["request_id"])
		assert.Equal(t, "/ping", entry["path"])
		assert.EqualValues(t, http.StatusAccepted, entry["status"])
	})

	t.Run("GeneratesRequestID", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Len(t, w.Header().Get("X-Request-ID"), 36)
	})
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Equal(t, slog.Default(), middleware.GetLoggerFromCtx(req.Context()))
}
