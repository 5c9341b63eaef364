package tracing

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/filedesk/internal/shared/id"
)

// HTTPMiddleware opens a span per request. A well-formed incoming X-Trace-ID
// is continued, anything else starts a new trace.
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if incoming := c.GetHeader(HeaderTraceID); id.IsValid(incoming) {
			parent := c.GetHeader(HeaderSpanID)
			if !id.IsValid(parent) {
				parent = ""
			}
			ctx = withIDs(ctx, TraceID(incoming), SpanID(parent))
		}

		name := c.FullPath()
		if name == "" {
			name = c.Request.URL.Path
		}
		span, ctx := tracer.StartSpan(ctx, c.Request.Method+" "+name)
		span.SetTag("http.method", c.Request.Method)
		span.SetTag("http.url", c.Request.URL.String())

		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderTraceID, string(span.TraceID))
		c.Header(HeaderSpanID, string(span.SpanID))

		c.Next()

		span.SetStatus(c.Writer.Status())
		span.SetTag("http.status", strconv.Itoa(c.Writer.Status()))
		var err error
		if len(c.Errors) > 0 {
			err = c.Errors.Last()
		}
		span.FinishWith(err)
		tracer.Submit(span)
	}
}
