// Package util provides small string helpers shared by the gateway: size
// parsing for config values, secret masking for logs and file name
// sanitizing for uploads.
package util
