// Package main is the entry point for the FileDesk backend server.
//
// FileDesk serves a single file manager session over HTTP: list a directory,
// build a selection, then copy, move or delete the selected entries.
//
// Configuration:
//   - Environment variables (PORT, HOST, FILES_ROOT, LOG_LEVEL, LOG_DEV,
//     RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED, CORS_ORIGINS)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -root /srv/files
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
