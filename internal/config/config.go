package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rshackmcp/internal/logging"
	"rshackmcp/pkg/fileops"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "rshackmcp" // application name used for config directory

const (
	// DefaultBinary is looked up on PATH when no binary is configured.
	DefaultBinary = "rs-hack"

	EnvBinary  = "RS_HACK_BIN"
	EnvWorkDir = "RS_HACK_WORKDIR"
)

// Config holds user configuration for rshackmcp.
type Config struct {
	// Binary is the rs-hack executable, either a name resolved on PATH or a path.
	Binary string `yaml:"binary"`
	// WorkDir is the directory rs-hack runs in. Empty means the server's own
	// working directory.
	WorkDir string `yaml:"work_dir,omitempty"`
	// LocalState makes rs-hack keep run history in ./.rs-hack instead of ~/.rs-hack.
	LocalState bool `yaml:"local_state"`
	// Timeout bounds a single rs-hack invocation. Zero means no limit.
	Timeout  time.Duration `yaml:"timeout,omitempty"`
	LogLevel string        `yaml:"log_level,omitempty"`
	Version  string        `yaml:"version"` // Track config version
}

// ConfigPath returns the standard config file path for the current platform
func ConfigPath() string {
	configPath := filepath.Join(xdg.ConfigHome, APP_NAME, "config.yaml")

	logging.Debug("Determined config path", "path", configPath)
	return configPath
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Binary:  DefaultBinary,
		Version: "1.0",
	}
}

// LoadFrom loads config from a specific path, falling back to defaults when
// the file does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	logging.Debug("Reading config file", "path", path)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("No config file found, using defaults", "path", path)
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// An empty file decodes to io.EOF; keep the defaults.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if strings.TrimSpace(cfg.Binary) == "" {
		cfg.Binary = DefaultBinary
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvBinary)); v != "" {
		c.Binary = v
	}
	if v := strings.TrimSpace(getenv(EnvWorkDir)); v != "" {
		c.WorkDir = v
	}
}

// Validate expands "~/" shortcuts and checks the working directory.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Binary) == "" {
		return fmt.Errorf("binary cannot be empty")
	}
	c.Binary = fileops.ExpandPath(c.Binary)

	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative: %s", c.Timeout)
	}

	if c.WorkDir != "" {
		c.WorkDir = fileops.ExpandPath(c.WorkDir)
		if err := fileops.ValidateDirectory(c.WorkDir); err != nil {
			return fmt.Errorf("invalid work_dir: %w", err)
		}
	}

	return nil
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	logging.Info("Configuration saved", "path", path)
	return nil
}
