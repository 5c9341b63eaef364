package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/filedesk/internal/domain/session"
	"github.com/GriffinCanCode/filedesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/filedesk/internal/providers/filesystem"
)

// Version is reported by the root endpoint
const Version = "0.1.0"

// Describer returns listing metadata for directory entries
type Describer interface {
	Describe(ctx context.Context, dir string, names []string, detectMime bool) []filesystem.EntryInfo
}

// Handlers contains all HTTP handlers
type Handlers struct {
	host      *session.Host
	fs        filesystem.Filesystem
	describer Describer
	metrics   *monitoring.Metrics
	startTime time.Time
}

// NewHandlers creates a new handler set. metrics may be nil.
func NewHandlers(host *session.Host, fs filesystem.Filesystem, describer Describer, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		host:      host,
		fs:        fs,
		describer: describer,
		metrics:   metrics,
		startTime: time.Now(),
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "FileDesk",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":         "healthy",
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"session":        h.host.Stats(),
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}
