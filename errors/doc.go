// Package errors provides the structured error type used across the gateway.
// Every failure that reaches the HTTP boundary is an *AppError carrying a
// machine-readable code, a client-safe message and the HTTP status to use.
package errors
