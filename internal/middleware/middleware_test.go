package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(handlers...)
	router.GET("/tags", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/draft", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return router
}

func serve(router http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	request, _ := http.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		request.Header[k] = v
	}
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func TestRequestID(t *testing.T) {
	router := newRouter(RequestID())

	t.Run("generates an id", func(t *testing.T) {
		response := serve(router, "/tags", nil)
		assert.Len(t, response.Header().Get(RequestIDHeader), 36)
	})

	t.Run("propagates the client id", func(t *testing.T) {
		response := serve(router, "/tags", http.Header{RequestIDHeader: {"abc-123"}})
		assert.Equal(t, "abc-123", response.Header().Get(RequestIDHeader))
	})
}

func TestAccessLog(t *testing.T) {
	logger, hook := test.NewNullLogger()
	router := newRouter(RequestID(), AccessLog(logger))

	serve(router, "/tags?page=2", http.Header{RequestIDHeader: {"req-1"}})
	serve(router, "/missing", nil)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Equal(t, "req-1", entries[0].Data["requestId"])
	assert.Equal(t, "/tags", entries[0].Data["path"])
	assert.Equal(t, "page=2", entries[0].Data["query"])
	assert.Equal(t, http.StatusOK, entries[0].Data["status"])
	assert.Equal(t, logrus.WarnLevel, entries[1].Level)
}

func TestRateLimit(t *testing.T) {
	t.Run("rejects requests above the burst", func(t *testing.T) {
		router := newRouter(RateLimit(0.001, 2))
		assert.Equal(t, http.StatusOK, serve(router, "/tags", nil).Code)
		assert.Equal(t, http.StatusOK, serve(router, "/tags", nil).Code)
		response := serve(router, "/tags", nil)
		assert.Equal(t, http.StatusTooManyRequests, response.Code)
		assert.Equal(t, "1", response.Header().Get("Retry-After"))
		assert.Equal(t, http.StatusOK, serve(router, "/health", nil).Code)
	})

	t.Run("skipped paths do not use up the bucket", func(t *testing.T) {
		router := newRouter(RateLimit(0.001, 1, "/draft"))
		for range 10 {
			assert.Equal(t, http.StatusNoContent, serve(router, "/draft", nil).Code)
		}
		assert.Equal(t, http.StatusOK, serve(router, "/tags", nil).Code)
		assert.Equal(t, http.StatusTooManyRequests, serve(router, "/tags", nil).Code)
	})

	t.Run("disabled when rps is zero", func(t *testing.T) {
		router := newRouter(RateLimit(0, 0))
		for range 10 {
			assert.Equal(t, http.StatusOK, serve(router, "/tags", nil).Code)
		}
	})
}
