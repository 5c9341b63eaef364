/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the backend
service, tracking HTTP requests, file manager operations and session state.
Each Metrics value owns its registry, so collectors never clash across
instances.

# Features

- HTTP request metrics (latency, throughput, size)
- File operation metrics (batch count, per-entry outcome, duration)
- Session metrics (entries listed, entries selected)
- System metrics (uptime)

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()
	defer metrics.Close()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Time operations
	timer := monitoring.NewTimer(metrics, "copy")
	// ... perform operation ...
	timer.Stop("success")

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
