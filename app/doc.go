// Package app assembles the scribe service: typed configuration, the
// transcription provider selected by the "provider" key, the recordings
// directory and the HTTP server with POST /transcribe.
package app
