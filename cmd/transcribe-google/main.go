// Command transcribe-google transcribes one audio file with Google Cloud
// Speech.
package main

import (
	"os"

	"github.com/kbukum/scribe/cli"
	"github.com/kbukum/scribe/transcription/googlespeech"
)

func main() {
	os.Exit(cli.Run(cli.Options{
		Use:      "transcribe-google",
		Provider: googlespeech.ProviderName,
	}, os.Args[1:], os.Stdout, os.Stderr))
}
