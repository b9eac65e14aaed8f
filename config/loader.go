package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = ".comment-checker.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/comment-checker"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
	// EnvFile is loaded from the working directory when present
	EnvFile = ".env"
)

// Environment variables overriding file configuration.
const (
	EnvPrompt            = "COMMENT_CHECKER_PROMPT"
	EnvLogLevel          = "COMMENT_CHECKER_LOG_LEVEL"
	EnvIncludeDocstrings = "COMMENT_CHECKER_INCLUDE_DOCSTRINGS"
	EnvMetricsFile       = "COMMENT_CHECKER_METRICS_FILE"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger     *slog.Logger
	workDir    string
	homeDir    string
	configFile string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithWorkDir sets the directory the project config search starts from.
func WithWorkDir(dir string) LoaderOption {
	return func(l *Loader) { l.workDir = dir }
}

// WithHomeDir overrides the home directory used for the user config.
func WithHomeDir(dir string) LoaderOption {
	return func(l *Loader) { l.homeDir = dir }
}

// WithConfigFile adds an explicit config file layered over the project config.
// Unlike the discovered files it must exist.
func WithConfigFile(path string) LoaderOption {
	return func(l *Loader) { l.configFile = path }
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger, opts ...LoaderOption) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loader{logger: logger}
	for _, opt := range opts {
		opt(l)
	}
	if l.workDir == "" {
		if cwd, err := os.Getwd(); err == nil {
			l.workDir = cwd
		}
	}
	if l.homeDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			l.homeDir = home
		}
	}
	return l
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/comment-checker/config.yaml)
// 3. Project config (.comment-checker.yaml in current or parent directories)
// 4. Explicit config file (WithConfigFile)
// 5. Environment variables, including a .env file in the working directory
func (l *Loader) Load() (*Config, error) {
	// Start with defaults
	config := DefaultConfig()

	// Load user config
	if userConfigPath := l.userConfigPath(); userConfigPath != "" {
		if userConfig, err := LoadFromFile(userConfigPath); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
			config.Merge(userConfig)
		} else if !errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
		}
	}

	config.Root = l.workDir

	// Load project config
	projectConfigPath := l.findProjectConfig()
	if projectConfigPath != "" {
		if projectConfig, err := LoadFromFile(projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			config.Merge(projectConfig)
			config.Root = filepath.Dir(projectConfigPath)
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	// Load explicit config
	if l.configFile != "" {
		explicit, err := LoadFromFile(l.configFile)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded config file", slog.String("path", l.configFile))
		config.Merge(explicit)
	}

	// Environment
	if l.workDir != "" {
		envPath := filepath.Join(l.workDir, EnvFile)
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				l.logger.Warn("Failed to load env file", slog.String("path", envPath), slog.String("error", err.Error()))
			}
		}
	}
	if err := applyEnv(config); err != nil {
		return nil, err
	}

	// Validate final config
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnv overlays environment variables onto the config.
func applyEnv(config *Config) error {
	if v := os.Getenv(EnvPrompt); v != "" {
		config.Checker.Prompt = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv(EnvIncludeDocstrings); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvIncludeDocstrings, err)
		}
		config.Checker.IncludeDocstrings = &include
	}
	if v := os.Getenv(EnvMetricsFile); v != "" {
		config.Metrics.Textfile = v
	}
	return nil
}

// EnsureUserConfig creates the user config file with defaults if it doesn't
// exist. It returns the file's path and whether it was created.
func (l *Loader) EnsureUserConfig() (string, bool, error) {
	userConfigPath := l.userConfigPath()
	if userConfigPath == "" {
		return "", false, fmt.Errorf("no home directory")
	}

	// Check if it already exists
	if _, err := os.Stat(userConfigPath); err == nil {
		return userConfigPath, false, nil
	}

	// Create default config
	config := DefaultConfig()
	if err := config.SaveToFile(userConfigPath); err != nil {
		return "", false, err
	}

	l.logger.Info("Created default user config", slog.String("path", userConfigPath))
	return userConfigPath, true, nil
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath() string {
	if l.homeDir == "" {
		return ""
	}
	return filepath.Join(l.homeDir, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for .comment-checker.yaml in the working
// directory and its parents
func (l *Loader) findProjectConfig() string {
	if l.workDir == "" {
		return ""
	}

	dir := l.workDir
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return ""
}
