// Command signup registers and confirms accounts against an identity provider.
package main

import (
	"os"

	"github.com/aussiebroadwan/signup/internal/cli"
)

// Set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
	built   = "unknown"
)

func main() {
	root := cli.NewRootCmd(cli.BuildInfo{Version: version, Commit: commit, Built: built})
	if err := root.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
