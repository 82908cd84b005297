// Package cmd implements the CLI commands for logspeed.
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "logspeed",
	Short: "Time a sequence of commands and print a checkpoint report",
	Long: `Logspeed runs commands one after another, records a checkpoint when each
one finishes, and prints a table with the time each step took and the
cumulative time since the start.`,
	SilenceUsage: true,
}

// Execute runs the root command. Interrupts cancel the running step.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
