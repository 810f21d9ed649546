// Package config loads and validates the docpress YAML configuration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docpress/internal/errors"
)

// Config represents the application configuration
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Source    SourceConfig    `yaml:"source"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
	LinkCheck LinkCheckConfig `yaml:"linkcheck"`
	Serve     ServeConfig     `yaml:"serve"`
}

// SiteConfig describes the rendered site.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
}

// SourceType selects where documents are loaded from.
type SourceType string

const (
	SourceDir SourceType = "dir"
	SourceGit SourceType = "git"
)

// SourceConfig points at the documentation sources.
type SourceConfig struct {
	Type    SourceType `yaml:"type,omitempty"`     // "dir" (default) or "git"
	Path    string     `yaml:"path,omitempty"`     // Local docs directory (dir source)
	URL     string     `yaml:"url,omitempty"`      // Repository URL (git source)
	Branch  string     `yaml:"branch,omitempty"`   // Branch to check out (git source)
	DocsDir string     `yaml:"docs_dir,omitempty"` // Docs subdirectory inside the repository
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"` // Clean output directory before build
}

// LoggingConfig controls slog handler selection.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug|info|warn|error
	Format string `yaml:"format,omitempty"` // text|json
}

// LinkCheckConfig controls post-render link verification.
type LinkCheckConfig struct {
	External bool   `yaml:"external,omitempty"` // Also probe external URLs
	NATSURL  string `yaml:"nats_url,omitempty"` // When set, broken links are published here
	Subject  string `yaml:"subject,omitempty"`  // NATS subject for broken link events
}

// ServeConfig controls the local preview server.
type ServeConfig struct {
	Port         int    `yaml:"port,omitempty"`
	RebuildEvery string `yaml:"rebuild_every,omitempty"` // Optional periodic full rebuild interval
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists; env vars referenced in the YAML depend on it.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Note: .env file couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, derrors.New(derrors.CategoryConfig, derrors.SeverityFatal,
			fmt.Sprintf("configuration file not found: %s", configPath))
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to read config file")
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to unmarshal config")
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with defaults applied, used when no config
// file is required (e.g. flag-only invocations).
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}
