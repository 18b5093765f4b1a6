// Command dcmstream parses a DICOM byte stream and prints the elements it
// contains, stopping early if a stop condition is given.
package main

import (
	"os"

	"github.com/codeninja55/dcmstream/cmd/dcmstream/internal/cli"
)

// version, commit, and date are injected at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := cli.Run(version, commit, date); err != nil {
		os.Exit(1)
	}
}
