// Package server provides the HTTP server: a Gin engine mounted on a
// ServeMux, wrapped with h2c and a net/http middleware stack.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: X-Request-Id generation and propagation
//   - RequestLogger: request logging with duration tracking
//   - CORS: cross-origin resource sharing
//   - BodySizeLimit: request body cap, surfaced as 413 by handlers
//
// # Endpoints
//
// Built-in endpoints (server/endpoint):
//
//   - /health: component health aggregation
//   - /ready: readiness probe
//   - /info: service name, version and uptime
package server
