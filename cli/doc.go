// Package cli builds the cobra commands behind the scribe binaries: one
// standalone transcriber per provider and the HTTP server.
package cli
