package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// buildInfo describes the running binary.
type buildInfo struct {
	Version string
	Commit  string
	Date    string
}

var build = buildInfo{Version: "dev", Commit: "unknown", Date: "unknown"}

// SetVersionInfo sets the version details reported by `logspeed version`.
// Development builds without ldflags fall back to the VCS stamp embedded by
// the Go toolchain.
func SetVersionInfo(version, commit, date string) {
	build = buildInfo{Version: version, Commit: commit, Date: date}
	if version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			build.Commit, build.Date = vcsStamp(info.Settings)
		}
	}
	rootCmd.Version = build.Version
}

// vcsStamp extracts a short commit (suffixed with -dirty for modified trees)
// and the commit time from build settings.
func vcsStamp(settings []debug.BuildSetting) (commit, date string) {
	commit, date = "unknown", "unknown"
	var revision string
	var modified bool
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			if s.Value != "" {
				date = s.Value
			}
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if len(revision) >= 7 {
		commit = revision[:7]
		if modified {
			commit += "-dirty"
		}
	}
	return commit, date
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "logspeed %s (commit %s, built %s)\n", build.Version, build.Commit, build.Date)
	},
}
