// Package version reports build information for the scribe binaries.
//
// Version and Commit are set at link time; otherwise the VCS stamps the Go
// toolchain embeds are used:
//
//	go build -ldflags "-X github.com/kbukum/scribe/version.Version=1.4.0" ./cmd/scribe-server
package version
