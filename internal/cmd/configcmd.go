package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexander-akhmetov/logspeed/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage logspeed configuration",
	Long:  `View and manage logspeed configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resolved configuration with its sources",
	Long: `Show the fully resolved configuration and the sources it was built from.

Configuration is loaded from multiple sources with the following precedence:
  1. Embedded defaults (built into binary)
  2. Global config (~/.config/logspeed/config.yaml)
  3. Environment variables (LOGSPEED_NAME, LOGSPEED_COLOR, LOGSPEED_SHELL, LOGSPEED_KEEP_GOING)
  4. Local config (.logspeed/config.yaml)
  5. CLI flags (highest precedence)`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "# Sources (in order of precedence)")
	for _, src := range cfg.Sources() {
		fmt.Fprintf(out, "#   - %s\n", src)
	}
	fmt.Fprintf(out, "# Global config: %s\n", cfg.ConfigDir())
	if cfg.LocalDir() != "" {
		fmt.Fprintf(out, "# Local config:  %s\n", cfg.LocalDir())
	} else {
		fmt.Fprintln(out, "# Local config:  (none detected)")
	}
	fmt.Fprint(out, string(data))
	return nil
}
