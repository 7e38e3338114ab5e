// Package component defines the lifecycle contract for the long-lived parts
// of the gateway (HTTP server, recordings folder, transcription provider)
// and a registry that starts them in order and stops them in reverse.
package component
