package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/filedesk/internal/infrastructure/config"
	"github.com/GriffinCanCode/filedesk/internal/infrastructure/logging"
)

func newTestServer(t *testing.T, root string) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Logging.Development = true
	cfg.Files.Root = root

	srv, err := NewServerWithLogger(cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })
	return srv
}

func get(srv *Server, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func getFrom(srv *Server, target, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestServerLoadsInitialDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0o644))

	srv := newTestServer(t, root)

	dir, loaded := srv.Session().CurrentDirectory()
	assert.True(t, loaded)
	assert.Equal(t, root, dir)
	assert.Equal(t, []string{"a.txt"}, srv.Session().Entries())
}

func TestServerMissingInitialDirectory(t *testing.T) {
	srv := newTestServer(t, filepath.Join(t.TempDir(), "missing"))

	_, loaded := srv.Session().CurrentDirectory()
	assert.False(t, loaded)
}

func TestServerRoutes(t *testing.T) {
	srv := newTestServer(t, "")

	health := get(srv, "/health")
	assert.Equal(t, http.StatusOK, health.Code)
	assert.NotEmpty(t, health.Header().Get("X-Trace-ID"))

	selection := get(srv, "/api/selection")
	assert.Equal(t, http.StatusOK, selection.Code)
	assert.JSONEq(t, `{"selection":[]}`, selection.Body.String())

	metrics := get(srv, "/metrics")
	assert.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "filedesk_http_requests_total")
	assert.Contains(t, metrics.Body.String(), "filedesk_entries_selected")
}

func TestServerRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.RateLimit.RequestsPerSecond = 1
	cfg.RateLimit.Burst = 1

	srv, err := NewServerWithLogger(cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	assert.Equal(t, http.StatusOK, get(srv, "/").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(srv, "/").Code)
	assert.Equal(t, http.StatusOK, getFrom(srv, "/", "198.51.100.7:4321").Code, "other clients keep their own bucket")
}

func TestServerGlobalRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.RateLimit.RequestsPerSecond = 1
	cfg.RateLimit.Burst = 1
	cfg.RateLimit.Global = true

	srv, err := NewServerWithLogger(cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	assert.Equal(t, http.StatusOK, get(srv, "/").Code)
	assert.Equal(t, http.StatusTooManyRequests, getFrom(srv, "/", "198.51.100.7:4321").Code)
}

func TestServerCloseStopsCollectors(t *testing.T) {
	srv := newTestServer(t, "")

	require.NoError(t, srv.Close())
	require.NoError(t, srv.Close())
	assert.Equal(t, http.StatusOK, get(srv, "/health").Code, "handler still serves after collectors stop")
}
