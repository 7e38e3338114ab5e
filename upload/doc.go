// Package upload implements POST /transcribe: it accepts one multipart audio
// file, stores it in the recordings directory for the duration of the
// request, hands its path to the configured transcription provider and
// deletes it on every exit path.
package upload
