/*
Package tracing provides lightweight request tracing.

Each HTTP request gets a span. Trace context is read from and written to the
X-Trace-ID and X-Span-ID headers (malformed IDs start a new trace), and completed spans are logged through zap
by a background collector. File manager operations open child spans so a
slow copy shows up under the request that started it.

# Usage

	tracer := tracing.New("filedesk", logger)
	defer tracer.Close()
	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "filemanager.copy")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()
	span.SetTag("destination", dest)

	logger.Info("copy started", tracing.Fields(ctx)...)
*/
package tracing
