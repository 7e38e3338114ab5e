// Command transcribe-aws starts an AWS Transcribe job for one audio file.
package main

import (
	"os"

	"github.com/kbukum/scribe/cli"
	"github.com/kbukum/scribe/transcription/awstranscribe"
)

func main() {
	os.Exit(cli.Run(cli.Options{
		Use:      "transcribe-aws",
		Provider: awstranscribe.ProviderName,
	}, os.Args[1:], os.Stdout, os.Stderr))
}
