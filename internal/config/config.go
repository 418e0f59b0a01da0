package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdlinkfix/internal/foundation/errors"
)

// DefaultPath is where Load looks for a config file when the user does not
// pass one explicitly. A missing file at this path is not an error; the
// defaults below describe the conventional Jekyll-to-MkDocs layout.
const DefaultPath = "mdlinkfix.yaml"

// Config represents the application configuration.
type Config struct {
	Docs  DocsConfig  `yaml:"docs"`
	Links LinksConfig `yaml:"links"`
	Watch WatchConfig `yaml:"watch"`
}

// DocsConfig describes the document tree to process.
type DocsConfig struct {
	// Root is the directory scanned recursively for documents.
	Root string `yaml:"root"`
	// Exclude holds doublestar glob patterns matched against paths relative
	// to Root; matching documents are skipped.
	Exclude []string `yaml:"exclude,omitempty"`
}

// LinksConfig describes the link conventions being normalized.
type LinksConfig struct {
	// Extension is the canonical file extension appended to rewritten links.
	Extension string `yaml:"extension"`
	// Helper is the template filter name whose wrapper expressions are
	// unwrapped, e.g. `{{ '/setup' | relative_url }}`.
	Helper string `yaml:"helper"`
	// Denylist holds bare filenames (compared case-insensitively) that never
	// receive the canonical extension because they resolve outside the
	// document tree.
	Denylist []string `yaml:"denylist"`
	// ScopedDirs names subtrees whose documents may carry a redundant
	// own-directory prefix in link targets; the prefix is stripped.
	ScopedDirs []string `yaml:"scoped_dirs"`
}

// WatchConfig configures continuous mode.
type WatchConfig struct {
	// Debounce is how long the watcher waits after the last filesystem event
	// before re-running a fix pass, as a time.ParseDuration string.
	Debounce string `yaml:"debounce"`
	// MetricsListen, when set, exposes Prometheus metrics on this address
	// during watch mode (e.g. ":9151").
	MetricsListen string `yaml:"metrics_listen,omitempty"`
}

// DebounceDuration returns the parsed debounce window. Validate has already
// rejected unparseable values by the time callers use this.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil || d <= 0 {
		return 2 * time.Second
	}
	return d
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Docs: DocsConfig{
			Root: "docs",
		},
		Links: LinksConfig{
			Extension:  ".md",
			Helper:     "relative_url",
			Denylist:   []string{"SECURITY", "RELEASE"},
			ScopedDirs: []string{"commands"},
		},
		Watch: WatchConfig{
			Debounce: "2s",
		},
	}
}

// Load loads configuration from the specified file.
//
// A missing file at DefaultPath yields the defaults; an explicitly chosen
// path that does not exist is a configuration error. Values in the YAML file
// override defaults field by field, and ${VAR} references are expanded from
// the environment (after an optional .env file is loaded).
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	cfg := Default()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if configPath == DefaultPath {
			return cfg, nil
		}
		return nil, errors.ConfigError("configuration file not found").
			WithContext("path", configPath).
			Build()
	}

	// #nosec G304 -- configPath comes from the CLI flag.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine cannot work with.
func (c *Config) Validate() error {
	if c.Docs.Root == "" {
		return errors.ConfigError("docs.root must not be empty").Build()
	}
	if c.Links.Extension == "" || !strings.HasPrefix(c.Links.Extension, ".") {
		return errors.ConfigError("links.extension must start with a dot").
			WithContext("extension", c.Links.Extension).
			Build()
	}
	if c.Links.Helper == "" {
		return errors.ConfigError("links.helper must not be empty").Build()
	}
	if d, err := time.ParseDuration(c.Watch.Debounce); err != nil || d <= 0 {
		return errors.ConfigError("watch.debounce must be a positive duration").
			WithContext("debounce", c.Watch.Debounce).
			Build()
	}
	for _, dir := range c.Links.ScopedDirs {
		if dir == "" || strings.ContainsAny(dir, "/\\") {
			return errors.ConfigError("links.scoped_dirs entries must be bare directory names").
				WithContext("entry", dir).
				Build()
		}
	}
	return nil
}
