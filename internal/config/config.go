// ABOUTME: Configuration management with storage backend selection
// ABOUTME: Handles the JSON config file, data directory resolution, and the storage backend factory

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/feedboard/internal/logging"
	"github.com/harper/feedboard/internal/storage"
)

// Config stores feedboard configuration.
type Config struct {
	// Backend selects the storage backend: "yaml" (default) or "sqlite".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// YAML puts feedboard.yaml here. SQLite puts feedboard.db here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/feedboard.
	DataDir string `json:"data_dir,omitempty"`

	// HTTPTimeout bounds each feed request, in seconds.
	HTTPTimeout int `json:"http_timeout,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "yaml".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return storage.BackendYAML
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return DefaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetHTTPTimeout returns the per-request timeout.
func (c *Config) GetHTTPTimeout() time.Duration {
	if c.HTTPTimeout <= 0 {
		return DefaultHTTPTimeout
	}
	return time.Duration(c.HTTPTimeout) * time.Second
}

// GetLogLevel returns the configured log level, defaulting to DefaultLogLevel.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return DefaultLogLevel
	}
	return c.LogLevel
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Store implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Store, error) {
	return OpenBackend(c.GetBackend(), c.GetDataDir())
}

// OpenBackend opens the named backend rooted at dataDir.
func OpenBackend(backend, dataDir string) (storage.Store, error) {
	switch backend {
	case storage.BackendYAML:
		return storage.NewYAMLStore(dataDir)
	case storage.BackendSQLite:
		return storage.NewSQLiteStore(storage.DefaultSQLitePath(dataDir))
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns $XDG_CONFIG_HOME/feedboard/config.json.
func GetConfigPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "feedboard", "config.json")
}

// xdgDir returns $env, or ~/fallback when it is unset.
func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(append([]string{home}, fallback...)...)
}

// Load reads config from disk. On first run it writes and returns the defaults.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultFirstRunConfig()
			if saveErr := cfg.Save(); saveErr != nil {
				fmt.Fprintf(os.Stderr, "warning: could not save default config: %v\n", saveErr)
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects backends the factory cannot open and unknown log levels.
func (c *Config) Validate() error {
	switch c.GetBackend() {
	case storage.BackendYAML, storage.BackendSQLite:
	default:
		return fmt.Errorf("unknown backend: %q (want %q or %q)", c.Backend, storage.BackendYAML, storage.BackendSQLite)
	}
	if _, err := logging.ParseLevel(c.GetLogLevel()); err != nil {
		return err
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must not be negative: %d", c.HTTPTimeout)
	}
	return nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return storage.AtomicWrite(GetConfigPath(), data)
}

// DefaultDataDir returns $XDG_DATA_HOME/feedboard.
func DefaultDataDir() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", ".local", "share"), "feedboard")
}

// defaultFirstRunConfig returns the appropriate default config for first-time runs.
// If an existing SQLite database is found, it preserves SQLite as the backend.
// Otherwise, it defaults to YAML for new users.
func defaultFirstRunConfig() *Config {
	dbPath := storage.DefaultSQLitePath(DefaultDataDir())
	_, err := os.Stat(dbPath)
	switch {
	case err == nil:
		return &Config{Backend: storage.BackendSQLite}
	case !errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(os.Stderr, "warning: could not check for existing database: %v\n", err)
	}
	return &Config{Backend: storage.BackendYAML}
}
