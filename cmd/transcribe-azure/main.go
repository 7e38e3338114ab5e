// Command transcribe-azure transcribes one audio file with Azure Speech.
package main

import (
	"os"

	"github.com/kbukum/scribe/cli"
	"github.com/kbukum/scribe/transcription/azurespeech"
	"github.com/kbukum/scribe/transcription/azurespeech/speechsdk"
)

func main() {
	os.Exit(cli.Run(cli.Options{
		Use:         "transcribe-azure",
		Provider:    azurespeech.ProviderName,
		AzureOpener: speechsdk.Open,
	}, os.Args[1:], os.Stdout, os.Stderr))
}
