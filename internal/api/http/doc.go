// Package http provides the HTTP handlers and routing for the file desk REST API.
//
// Handlers are a thin adapter over session.Host: they validate input, call the
// session and map results and errors to JSON.
//
// Endpoints:
//   - Health: / and /health
//   - Listing: GET /api/files?path=<dir>[&mime=true]
//   - Selection: GET and POST /api/selection
//   - Batches: POST /api/files/copy, POST /api/files/move, DELETE /api/files/delete
//
// Example Usage:
//
//	handlers := http.NewHandlers(host, local, local, metrics)
//	http.RegisterRoutes(router, handlers)
package http
