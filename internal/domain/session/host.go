package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/filedesk/internal/domain/filemanager"
	"github.com/GriffinCanCode/filedesk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/filedesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/filedesk/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/filedesk/internal/shared/id"
)

// Stats describes the hosted session
type Stats struct {
	SessionID  id.SessionID `json:"session_id"`
	Directory  string       `json:"directory,omitempty"`
	Loaded     bool         `json:"loaded"`
	Entries    int          `json:"entries"`
	Selected   int          `json:"selected"`
	Operations int          `json:"operations"`
	CreatedAt  time.Time    `json:"created_at"`
	LastLoaded *time.Time   `json:"last_loaded,omitempty"`
}

// Host owns one filemanager.Manager and serializes access to it
type Host struct {
	mu         sync.Mutex
	id         id.SessionID
	manager    *filemanager.Manager
	logger     *logging.Logger
	metrics    *monitoring.Metrics
	tracer     *tracing.Tracer
	createdAt  time.Time
	lastLoaded *time.Time
	operations int
}

// NewHost creates a host around manager
func NewHost(manager *filemanager.Manager, logger *logging.Logger) *Host {
	if logger == nil {
		logger = logging.NewNop()
	}
	sessionID := id.NewSessionID()
	return &Host{
		id:        sessionID,
		manager:   manager,
		logger:    &logging.Logger{Logger: logger.Named("session").With(zap.String("session_id", string(sessionID)))},
		createdAt: time.Now(),
	}
}

// WithMetrics attaches a metrics collector
func (h *Host) WithMetrics(metrics *monitoring.Metrics) *Host {
	h.metrics = metrics
	return h
}

// WithTracer attaches a tracer for batch operation spans
func (h *Host) WithTracer(tracer *tracing.Tracer) *Host {
	h.tracer = tracer
	return h
}

// ID returns the session identifier
func (h *Host) ID() id.SessionID {
	return h.id
}

// Load lists directory and makes it the current one
func (h *Host) Load(ctx context.Context, directory string) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries, err := h.manager.Load(ctx, directory)
	if err != nil {
		h.logger.Warn("failed to load directory",
			append(tracing.Fields(ctx), zap.String("directory", directory), zap.Error(err))...)
		return nil, err
	}

	now := time.Now()
	h.lastLoaded = &now
	h.logger.Info("directory loaded",
		append(tracing.Fields(ctx), zap.String("directory", directory), zap.Int("count", len(entries)))...)
	h.publishState()
	return entries, nil
}

// CurrentDirectory returns the loaded directory and whether one is loaded
func (h *Host) CurrentDirectory() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.manager.CurrentDirectory()
}

// Entries returns the current entry names
func (h *Host) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.manager.Entries()
}

// Selection returns the selected names, sorted
func (h *Host) Selection() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.manager.Selected()
}

// Select adds name to the selection if it is a current entry
func (h *Host) Select(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	ok := h.manager.Select(name)
	h.publishState()
	return ok
}

// Deselect removes name from the selection
func (h *Host) Deselect(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	ok := h.manager.Deselect(name)
	h.publishState()
	return ok
}

// SelectAll selects every current entry
func (h *Host) SelectAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.manager.SelectAll()
	h.publishState()
}

// DeselectAll clears the selection
func (h *Host) DeselectAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.manager.DeselectAll()
	h.publishState()
}

// SelectMatching selects every entry matching a glob pattern
func (h *Host) SelectMatching(pattern string) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	count, err := h.manager.SelectMatching(pattern)
	if err != nil {
		return 0, err
	}
	h.publishState()
	return count, nil
}

// Copy copies the selection into destination (generated when empty)
func (h *Host) Copy(ctx context.Context, destination string) (*filemanager.Result, error) {
	return h.run(ctx, filemanager.OpCopy, destination, h.manager.CopySelection)
}

// Move moves the selection into destination (generated when empty)
func (h *Host) Move(ctx context.Context, destination string) (*filemanager.Result, error) {
	return h.run(ctx, filemanager.OpMove, destination, h.manager.MoveSelection)
}

// Delete deletes the selection
func (h *Host) Delete(ctx context.Context) (*filemanager.Result, error) {
	return h.run(ctx, filemanager.OpDelete, "", func(ctx context.Context, _ string) (*filemanager.Result, error) {
		return h.manager.DeleteSelection(ctx)
	})
}

// Stats returns a snapshot of the session
func (h *Host) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	directory, loaded := h.manager.CurrentDirectory()
	return Stats{
		SessionID:  h.id,
		Directory:  directory,
		Loaded:     loaded,
		Entries:    len(h.manager.Entries()),
		Selected:   h.manager.Len(),
		Operations: h.operations,
		CreatedAt:  h.createdAt,
		LastLoaded: h.lastLoaded,
	}
}

type batchFunc func(ctx context.Context, destination string) (*filemanager.Result, error)

// run executes one batch operation under the lock with logging, metrics and a span
func (h *Host) run(ctx context.Context, op, destination string, fn batchFunc) (*filemanager.Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var span *tracing.Span
	if h.tracer != nil {
		span, ctx = h.tracer.StartSpan(ctx, "filemanager."+op)
		defer h.tracer.Submit(span)
	}
	timer := monitoring.NewTimer(h.metrics, op)

	directory, _ := h.manager.CurrentDirectory()
	selected := h.manager.Len()

	result, err := fn(ctx, destination)
	h.operations++
	if err != nil {
		timer.Stop("error")
		if span != nil {
			span.FinishWith(err)
		}
		h.logger.Error("operation failed", append(tracing.Fields(ctx),
			zap.String("op", op),
			zap.String("directory", directory),
			zap.String("destination", destination),
			zap.Error(err),
		)...)
		return nil, err
	}

	status := "success"
	if result.Failed() {
		status = "partial"
	}
	timer.Stop(status)
	if h.metrics != nil {
		h.metrics.RecordEntries(op, len(result.Processed), len(result.Failures))
	}
	h.publishState()

	if span != nil {
		span.SetTag("directory", directory)
		if result.Destination != "" {
			span.SetTag("destination", result.Destination)
		}
		span.FinishWith(result.Err())
	}

	fields := append(tracing.Fields(ctx),
		zap.String("op", op),
		zap.String("directory", directory),
		zap.Int("selected", selected),
		zap.Int("count", len(result.Processed)),
		zap.Int("failures", len(result.Failures)),
	)
	if result.Destination != "" {
		fields = append(fields, zap.String("destination", result.Destination))
	}
	if result.Failed() {
		h.logger.Warn("operation completed with failures", append(fields, zap.Error(result.Err()))...)
	} else {
		h.logger.Info("operation completed", fields...)
	}

	return result, nil
}

// publishState updates the session gauges; caller holds the lock
func (h *Host) publishState() {
	if h.metrics == nil {
		return
	}
	h.metrics.SetSessionState(len(h.manager.Entries()), h.manager.Len())
}
