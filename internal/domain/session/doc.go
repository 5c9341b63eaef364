// Package session hosts the single file manager session served by the API.
//
// The core filemanager.Manager is single-threaded; Host serializes every call
// behind a mutex so concurrent HTTP handlers observe a consistent selection.
// Host also carries the ambient concerns around a batch: structured logging,
// Prometheus counters and a tracing span per copy, move or delete.
//
// Example Usage:
//
//	host := session.NewHost(filemanager.NewDefaultManager(), logger).
//		WithMetrics(metrics).
//		WithTracer(tracer)
//	entries, err := host.Load(ctx, "/srv/files")
//	host.Select("report.pdf")
//	result, err := host.Copy(ctx, "")
package session
