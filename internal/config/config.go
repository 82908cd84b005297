// Package config provides unified configuration management for logspeed.
// Configuration is loaded from multiple sources with the following precedence:
// embedded defaults → global file → env vars → local file → CLI flags
package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/alexander-akhmetov/logspeed/internal/dirs"
)

//go:embed defaults/config.yaml
var defaultsFS embed.FS

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Step is one named command timed by `logspeed run`.
type Step struct {
	Name string `yaml:"name"`
	Run  string `yaml:"run"`
}

// Label returns the checkpoint label for the step.
func (s Step) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Run
}

// Config holds all configuration settings for logspeed.
// KeepGoingSet tracks whether keep_going was explicitly set so a local
// file can override a global true with false.
type Config struct {
	Name      string `yaml:"name"`
	Color     string `yaml:"color"`
	Shell     string `yaml:"shell"`
	KeepGoing bool   `yaml:"keep_going"`
	Steps     []Step `yaml:"steps"`

	KeepGoingSet bool `yaml:"-"`

	configDir string
	localDir  string
	sources   []string
}

// CLIFlags carries command-line overrides. Empty strings mean "not set".
type CLIFlags struct {
	Name         string
	Color        string
	Shell        string
	KeepGoing    bool
	KeepGoingSet bool
}

// Sources returns the ordered list of sources that contributed to this config.
func (c *Config) Sources() []string {
	return c.sources
}

// LocalDir returns the local project config directory if one was detected.
func (c *Config) LocalDir() string {
	return c.localDir
}

// ConfigDir returns the global config directory.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// Load loads all configuration from the default locations.
// It auto-detects .logspeed/ in the current working directory for local overrides.
func Load() (*Config, error) {
	var localDir string
	if cwd, err := os.Getwd(); err == nil {
		localDir = dirs.LocalConfigDir(cwd)
	}
	return LoadWithDirs(dirs.ConfigDir(), localDir)
}

// LoadWithDirs loads configuration with explicit global and local directories.
// Local config overrides global config per-field. If localDir is empty,
// only global config is used. Missing files are skipped.
func LoadWithDirs(globalDir, localDir string) (*Config, error) {
	// 1. Start with embedded defaults
	cfg, err := loadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("load embedded defaults: %w", err)
	}
	cfg.sources = append(cfg.sources, "embedded")

	// 2. Merge global config
	if globalDir != "" {
		globalPath := filepath.Join(globalDir, "config.yaml")
		if globalCfg, err := loadFile(globalPath); err == nil {
			cfg.mergeFrom(globalCfg)
			cfg.sources = append(cfg.sources, globalPath)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load global config: %w", err)
		}
	}

	// 3. Apply environment variables (between global and local)
	cfg.applyEnv()

	// 4. Merge local config (highest file precedence)
	if localDir != "" {
		localPath := filepath.Join(localDir, "config.yaml")
		if localCfg, err := loadFile(localPath); err == nil {
			cfg.mergeFrom(localCfg)
			cfg.sources = append(cfg.sources, localPath)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load local config: %w", err)
		}
	}

	cfg.configDir = globalDir
	cfg.localDir = localDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEmbedded loads config from the embedded defaults.
func loadEmbedded() (*Config, error) {
	data, err := defaultsFS.ReadFile("defaults/config.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded defaults: %w", err)
	}
	return parseConfig(data)
}

// loadFile loads config from a file path.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user's config file
	if err != nil {
		return nil, err
	}
	cfg, err := parseConfigWithTracking(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// parseConfig parses YAML config data into a Config struct.
func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// parseConfigWithTracking parses YAML config and tracks which fields were set.
func parseConfigWithTracking(data []byte) (*Config, error) {
	cfg, err := parseConfig(data)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if _, ok := raw["keep_going"]; ok {
		cfg.KeepGoingSet = true
	}

	return cfg, nil
}

// applyEnv applies environment variables to the config.
// Env vars sit between global and local config in precedence.
func (c *Config) applyEnv() {
	if v := os.Getenv("LOGSPEED_NAME"); v != "" {
		c.Name = v
		c.sources = append(c.sources, "env:LOGSPEED_NAME")
	}

	if v := os.Getenv("LOGSPEED_COLOR"); v != "" {
		c.Color = v
		c.sources = append(c.sources, "env:LOGSPEED_COLOR")
	}

	if v := os.Getenv("LOGSPEED_SHELL"); v != "" {
		c.Shell = v
		c.sources = append(c.sources, "env:LOGSPEED_SHELL")
	}

	if v := os.Getenv("LOGSPEED_KEEP_GOING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.KeepGoing = b
			c.KeepGoingSet = true
			c.sources = append(c.sources, "env:LOGSPEED_KEEP_GOING")
		}
	}
}

// mergeFrom merges non-empty/set values from src into c.
func (c *Config) mergeFrom(src *Config) {
	if src.Name != "" {
		c.Name = src.Name
	}
	if src.Color != "" {
		c.Color = src.Color
	}
	if src.Shell != "" {
		c.Shell = src.Shell
	}
	if src.KeepGoingSet {
		c.KeepGoing = src.KeepGoing
		c.KeepGoingSet = true
	}
	if len(src.Steps) > 0 {
		c.Steps = src.Steps
	}
}

// ApplyCLIFlags applies CLI flag overrides to the config.
// CLI flags have the highest precedence.
func (c *Config) ApplyCLIFlags(flags CLIFlags) error {
	if flags.Name != "" {
		c.Name = flags.Name
	}
	if flags.Color != "" {
		c.Color = flags.Color
	}
	if flags.Shell != "" {
		c.Shell = flags.Shell
	}
	if flags.KeepGoingSet {
		c.KeepGoing = flags.KeepGoing
		c.KeepGoingSet = true
	}
	return c.Validate()
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color %q (supported: auto, always, never)", c.Color)
	}
	if c.Shell == "" {
		return fmt.Errorf("shell must not be empty")
	}
	for i, step := range c.Steps {
		if step.Run == "" {
			return fmt.Errorf("step %d (%q) has no run command", i+1, step.Name)
		}
	}
	return nil
}

// UseColor resolves the color mode for an output that is or is not a terminal.
func (c *Config) UseColor(isTTY bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTTY
	}
}
