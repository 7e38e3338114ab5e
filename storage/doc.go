// Package storage defines the object storage contract shared by the
// recordings folder and the S3 staging bucket.
//
// # Backends
//
//   - storage/local: scoped temp directory holding uploaded recordings
//   - storage/s3: Amazon S3 (and S3-compatible) bucket used to stage audio
//     for batch transcription jobs
package storage
