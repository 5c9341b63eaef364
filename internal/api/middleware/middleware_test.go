package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func serve(router *gin.Engine, method, remote, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/test", nil)
	if remote != "" {
		req.RemoteAddr = remote
	}
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORS(t *testing.T) {
	router := setupTestRouter()
	router.Use(CORS(DefaultCORSConfig()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	tests := []struct {
		name           string
		method         string
		origin         string
		wantStatus     int
		wantCORSHeader bool
	}{
		{name: "simple GET request with origin", method: http.MethodGet, origin: "http://localhost:3000", wantStatus: http.StatusOK, wantCORSHeader: true},
		{name: "preflight OPTIONS request", method: http.MethodOptions, origin: "http://localhost:3000", wantStatus: http.StatusNoContent, wantCORSHeader: true},
		{name: "no origin header", method: http.MethodGet, wantStatus: http.StatusOK, wantCORSHeader: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, tt.method, "", tt.origin)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCORSHeader {
				assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"), "CORS header should be set")
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestCORSRestrictedOrigins(t *testing.T) {
	router := setupTestRouter()
	router.Use(CORS(CORSConfigForOrigins([]string{"https://example.com"})))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	allowed := serve(router, http.MethodGet, "", "https://example.com")
	assert.Equal(t, http.StatusOK, allowed.Code)
	assert.Equal(t, "https://example.com", allowed.Header().Get("Access-Control-Allow-Origin"))

	denied := serve(router, http.MethodGet, "", "https://evil.example")
	assert.Equal(t, http.StatusForbidden, denied.Code)
}

func TestCORSConfigForOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, CORSConfigForOrigins(nil).AllowOrigins)
	cfg := CORSConfigForOrigins([]string{"http://a", "http://b"})
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.AllowOrigins)
	assert.Contains(t, cfg.AllowMethods, http.MethodDelete)
	assert.Contains(t, cfg.ExposeHeaders, "X-Trace-ID")
}

func TestRateLimit(t *testing.T) {
	router := setupTestRouter()
	router.Use(RateLimit(RateLimitConfig{RequestsPerSecond: 2, Burst: 2}))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	for i := 0; i < 2; i++ {
		w := serve(router, http.MethodGet, "192.168.1.1:1234", "")
		assert.Equal(t, http.StatusOK, w.Code, "Request %d should succeed", i+1)
	}

	w := serve(router, http.MethodGet, "192.168.1.1:1234", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, w.Body.String())
}

func TestRateLimitDifferentClients(t *testing.T) {
	router := setupTestRouter()
	router.Use(RateLimit(RateLimitConfig{RequestsPerSecond: 1, Burst: 1}))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "192.168.1.1:1234", "").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "192.168.1.2:1234", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, http.MethodGet, "192.168.1.1:1234", "").Code)
}

func TestRateLimitEvictsIdleClients(t *testing.T) {
	store := newLimiterStore(RateLimitConfig{RequestsPerSecond: 1, Burst: 1, IdleTimeout: time.Minute})
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.get("10.0.0.1")
	store.get("10.0.0.2")
	assert.Equal(t, 2, store.size())

	now = now.Add(30 * time.Second)
	store.get("10.0.0.2")
	assert.Equal(t, 2, store.size())

	now = now.Add(45 * time.Second)
	store.get("10.0.0.3")
	assert.Equal(t, 2, store.size(), "10.0.0.1 idle for 75s is evicted")
}

func TestGlobalRateLimit(t *testing.T) {
	router := setupTestRouter()
	router.Use(GlobalRateLimit(RateLimitConfig{RequestsPerSecond: 2, Burst: 2}))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "192.168.1.1:1234", "").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "192.168.1.2:1234", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, http.MethodGet, "192.168.1.3:1234", "").Code)
}

func TestDefaultConfigs(t *testing.T) {
	cors := DefaultCORSConfig()
	assert.Contains(t, cors.AllowOrigins, "*")
	assert.Contains(t, cors.AllowMethods, http.MethodGet)
	assert.Contains(t, cors.AllowMethods, http.MethodPost)
	assert.Equal(t, 12*time.Hour, cors.MaxAge)

	rl := DefaultRateLimitConfig()
	assert.Equal(t, 100, rl.RequestsPerSecond)
	assert.Equal(t, 200, rl.Burst)
	assert.Equal(t, 10*time.Minute, rl.IdleTimeout)
}

func BenchmarkRateLimit(b *testing.B) {
	router := setupTestRouter()
	router.Use(RateLimit(DefaultRateLimitConfig()))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		serve(router, http.MethodGet, "192.168.1.1:1234", "")
	}
}
