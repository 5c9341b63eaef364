// Package server assembles the FileDesk HTTP service: logger, metrics,
// tracer, the local filesystem ports, the session host and the gin router
// with its middleware chain.
package server
