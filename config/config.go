// Package config provides configuration loading and management for the
// comment checker.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Config represents the complete comment checker configuration
type Config struct {
	// Root is the directory relative ignore globs are resolved against: the
	// directory of the project config, or the working directory. Set by
	// the Loader, never read from a file.
	Root string `yaml:"-"`

	Checker CheckerConfig `yaml:"checker"`
	Filters FiltersConfig `yaml:"filters"`
	Paths   PathsConfig   `yaml:"paths"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
	Watch   WatchConfig   `yaml:"watch"`
}

// CheckerConfig configures what gets reported
type CheckerConfig struct {
	// IncludeDocstrings reports docstrings as well as comments (default: true)
	IncludeDocstrings *bool `yaml:"include_docstrings,omitempty"`
	// Prompt replaces the built-in message; {{comments}} is substituted
	Prompt string `yaml:"prompt,omitempty"`
}

// FiltersConfig tunes the suppression filters
type FiltersConfig struct {
	// Disabled lists filter names to turn off (shebang, bdd, directive)
	Disabled []string `yaml:"disabled,omitempty"`
	// ExtraDirectives are additional directive prefixes to suppress
	ExtraDirectives []string `yaml:"extra_directives,omitempty"`
	// ExtraBDDKeywords are additional single-keyword comments to suppress
	ExtraBDDKeywords []string `yaml:"extra_bdd_keywords,omitempty"`
}

// PathsConfig selects which files are checked
type PathsConfig struct {
	// Ignore holds doublestar globs of paths that are never checked
	Ignore []string `yaml:"ignore,omitempty"`
}

// MetricsConfig configures metric export
type MetricsConfig struct {
	// Textfile is a node_exporter textfile path (empty = disabled)
	Textfile string `yaml:"textfile,omitempty"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

// WatchConfig configures the watch command
type WatchConfig struct {
	// Debounce is how long to wait for more changes before processing
	Debounce time.Duration `yaml:"debounce"`
}

// MarshalYAML writes the debounce in time.ParseDuration form so the file
// reads back.
func (w WatchConfig) MarshalYAML() (any, error) {
	return struct {
		Debounce string `yaml:"debounce"`
	}{w.Debounce.String()}, nil
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

var knownFilters = []string{"shebang", "bdd", "directive"}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	include := true
	return &Config{
		Checker: CheckerConfig{
			IncludeDocstrings: &include,
		},
		Paths: PathsConfig{
			Ignore: []string{"**/vendor/**", "**/node_modules/**", "**/.git/**"},
		},
		Log: LogConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			Debounce: 100 * time.Millisecond,
		},
	}
}

// IncludeDocstrings reports whether docstrings are checked.
func (c *Config) IncludeDocstrings() bool {
	return c.Checker.IncludeDocstrings == nil || *c.Checker.IncludeDocstrings
}

// Ignored reports whether a path matches an ignore glob. Absolute paths
// below Root are matched relative to Root; every path is also matched as
// given (slash form, leading "/" removed) so "**/" globs apply anywhere.
func (c *Config) Ignored(path string) bool {
	candidates := []string{strings.TrimPrefix(filepath.ToSlash(path), "/")}
	if c.Root != "" && filepath.IsAbs(path) {
		if rel, err := filepath.Rel(c.Root, path); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			candidates = append(candidates, filepath.ToSlash(rel))
		}
	}
	for _, pattern := range c.Paths.Ignore {
		for _, p := range candidates {
			if ok, _ := doublestar.Match(pattern, p); ok {
				return true
			}
		}
	}
	return false
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if !slices.Contains(validLogLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of %s", strings.Join(validLogLevels, ", "))
	}
	for _, name := range c.Filters.Disabled {
		if !slices.Contains(knownFilters, name) {
			return fmt.Errorf("filters.disabled: unknown filter %q", name)
		}
	}
	for _, pattern := range c.Paths.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("paths.ignore: invalid glob %q", pattern)
		}
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Checker
	if other.Checker.IncludeDocstrings != nil {
		include := *other.Checker.IncludeDocstrings
		c.Checker.IncludeDocstrings = &include
	}
	if other.Checker.Prompt != "" {
		c.Checker.Prompt = other.Checker.Prompt
	}

	// Filters
	if len(other.Filters.Disabled) > 0 {
		c.Filters.Disabled = other.Filters.Disabled
	}
	c.Filters.ExtraDirectives = append(c.Filters.ExtraDirectives, other.Filters.ExtraDirectives...)
	c.Filters.ExtraBDDKeywords = append(c.Filters.ExtraBDDKeywords, other.Filters.ExtraBDDKeywords...)

	// Paths
	c.Paths.Ignore = append(c.Paths.Ignore, other.Paths.Ignore...)

	// Metrics
	if other.Metrics.Textfile != "" {
		c.Metrics.Textfile = other.Metrics.Textfile
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}

	// Watch
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
}
