package tracing

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/filedesk/internal/shared/id"
)

// Propagation headers
const (
	HeaderTraceID = "X-Trace-ID"
	HeaderSpanID  = "X-Span-ID"
)

const spanBufferSize = 1000

// TraceID identifies every span of one request
type TraceID string

// SpanID identifies a single span
type SpanID string

// Span is one timed unit of work inside a trace
type Span struct {
	TraceID    TraceID
	SpanID     SpanID
	ParentID   SpanID
	Name       string
	Service    string
	StartTime  time.Time
	Duration   time.Duration
	Tags       map[string]string
	Error      error
	StatusCode int
}

// SetTag attaches a string attribute
func (s *Span) SetTag(key, value string) {
	s.Tags[key] = value
}

// SetStatus records the response status
func (s *Span) SetStatus(code int) {
	s.StatusCode = code
}

// SetError records err and marks the span failed unless a status is already set
func (s *Span) SetError(err error) {
	s.Error = err
	if s.StatusCode == 0 {
		s.StatusCode = 500
	}
}

// Finish stamps the span duration
func (s *Span) Finish() {
	s.Duration = time.Since(s.StartTime)
}

// FinishWith records err when non-nil, then finishes the span
func (s *Span) FinishWith(err error) {
	if err != nil {
		s.SetError(err)
	}
	s.Finish()
}

// Tracer creates spans and logs them from a background collector
type Tracer struct {
	service string
	logger  *zap.Logger
	spans   chan *Span
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// New creates a tracer and starts its collector; Close stops it
func New(service string, logger *zap.Logger) *Tracer {
	t := &Tracer{
		service: service,
		logger:  logger,
		spans:   make(chan *Span, spanBufferSize),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go t.collect()
	return t
}

// StartSpan opens a span under the trace and parent span carried by ctx.
// Without a trace in ctx a new one is started.
func (t *Tracer) StartSpan(ctx context.Context, name string) (*Span, context.Context) {
	traceID := GetTraceID(ctx)
	if traceID == "" {
		traceID = TraceID(id.NewRequestID())
	}

	span := &Span{
		TraceID:   traceID,
		SpanID:    SpanID(id.NewSpanID()),
		ParentID:  GetSpanID(ctx),
		Name:      name,
		Service:   t.service,
		StartTime: time.Now(),
		Tags:      make(map[string]string),
	}

	return span, withIDs(ctx, traceID, span.SpanID)
}

// Submit queues a finished span for logging. Spans are dropped when the
// buffer is full or the tracer is closed.
func (t *Tracer) Submit(span *Span) {
	select {
	case <-t.stop:
		return
	default:
	}

	select {
	case t.spans <- span:
	default:
		t.logger.Warn("span buffer full, dropping span",
			zap.String("trace_id", string(span.TraceID)),
			zap.String("span_id", string(span.SpanID)),
		)
	}
}

// Close stops the collector after logging every queued span
func (t *Tracer) Close() {
	t.once.Do(func() {
		close(t.stop)
		<-t.done
	})
}

func (t *Tracer) collect() {
	defer close(t.done)
	for {
		select {
		case span := <-t.spans:
			t.emit(span)
		case <-t.stop:
			for {
				select {
				case span := <-t.spans:
					t.emit(span)
				default:
					return
				}
			}
		}
	}
}

func (t *Tracer) emit(span *Span) {
	fields := []zap.Field{
		zap.String("trace_id", string(span.TraceID)),
		zap.String("span_id", string(span.SpanID)),
		zap.String("operation", span.Name),
		zap.Duration("duration", span.Duration),
		zap.String("service", span.Service),
	}
	if span.ParentID != "" {
		fields = append(fields, zap.String("parent_id", string(span.ParentID)))
	}
	if span.StatusCode != 0 {
		fields = append(fields, zap.Int("status", span.StatusCode))
	}
	for key, value := range span.Tags {
		fields = append(fields, zap.String(key, value))
	}

	if span.Error != nil {
		t.logger.Error("span completed with error", append(fields, zap.Error(span.Error))...)
		return
	}
	t.logger.Debug("span completed", fields...)
}

type contextKey int

const (
	traceIDKey contextKey = iota
	spanIDKey
)

func withIDs(ctx context.Context, traceID TraceID, spanID SpanID) context.Context {
	if traceID != "" {
		ctx = context.WithValue(ctx, traceIDKey, traceID)
	}
	if spanID != "" {
		ctx = context.WithValue(ctx, spanIDKey, spanID)
	}
	return ctx
}

// GetTraceID returns the trace carried by ctx, or ""
func GetTraceID(ctx context.Context) TraceID {
	traceID, _ := ctx.Value(traceIDKey).(TraceID)
	return traceID
}

// GetSpanID returns the current span carried by ctx, or ""
func GetSpanID(ctx context.Context) SpanID {
	spanID, _ := ctx.Value(spanIDKey).(SpanID)
	return spanID
}

// Fields returns zap fields for the trace and span carried by ctx
func Fields(ctx context.Context) []zap.Field {
	var fields []zap.Field
	if traceID := GetTraceID(ctx); traceID != "" {
		fields = append(fields, zap.String("trace_id", string(traceID)))
	}
	if spanID := GetSpanID(ctx); spanID != "" {
		fields = append(fields, zap.String("span_id", string(spanID)))
	}
	return fields
}
