// Package middleware provides the HTTP middleware stack for the file desk API.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing with configurable origins
//   - RateLimit: Per-IP token bucket rate limiting with idle client eviction
//   - GlobalRateLimit: One token bucket shared by every client, selected by RATE_LIMIT_GLOBAL
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.CORSConfigForOrigins(cfg.CORS.AllowOrigins)))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
