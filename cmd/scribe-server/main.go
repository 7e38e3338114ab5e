// Command scribe-server serves POST /transcribe with the provider selected by
// the PROVIDER setting.
package main

import (
	"os"

	"github.com/kbukum/scribe/cli"
	"github.com/kbukum/scribe/transcription/azurespeech/speechsdk"
)

func main() {
	os.Exit(cli.RunServer(speechsdk.Open, os.Args[1:], os.Stdout, os.Stderr))
}
