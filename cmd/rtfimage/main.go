package main

import (
	"log"
	"os"

	"github.com/ironsheep/rtfimage/internal/cli"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Logs go to stderr; stdout carries MCP responses and rendered RTF
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cli.SetVersion(Version)
	cli.SetBuildInfo(BuildTime, GitCommit)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
