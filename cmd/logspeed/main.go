// Package main provides the CLI entry point for logspeed.
package main

import (
	"os"

	"github.com/alexander-akhmetov/logspeed/internal/cmd"
	"github.com/alexander-akhmetov/logspeed/internal/timing"
)

// Version information set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	timing.Log("init")
	err := cmd.Execute()
	timing.Report()
	if err != nil {
		os.Exit(1)
	}
}
