package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/postboard/internal/domain"
	"github.com/bft-labs/postboard/pkg/httpclient"
)

// Storage backends selectable with --state-backend.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// DefaultListenAddr is the address the server binds when none is configured.
const DefaultListenAddr = ":8080"

// Config holds CLI configuration for postboard.
type Config struct {
	ListenAddr string
	MountPath  string

	StateBackend string
	StateDir     string
	SQLitePath   string
	RedisAddr    string
	RedisPrefix  string

	APIBaseURL      string
	HTTPTimeout     time.Duration
	ShutdownTimeout time.Duration

	LogLevel    string
	WatchConfig bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ListenAddr:      DefaultListenAddr,
		MountPath:       "/",
		StateBackend:    BackendFile,
		StateDir:        "", // Derived from the home directory during Validate
		RedisAddr:       "localhost:6379",
		RedisPrefix:     "postboard:",
		APIBaseURL:      httpclient.DefaultBaseURL,
		HTTPTimeout:     15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		LogLevel:        "info",
		WatchConfig:     true,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	switch c.StateBackend {
	case BackendMemory, BackendFile, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("%w: unknown state backend %q", domain.ErrInvalidConfig, c.StateBackend)
	}

	if c.StateDir == "" && (c.StateBackend == BackendFile || c.StateBackend == BackendSQLite) {
		h, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("%w: state-dir is required (no home directory)", domain.ErrInvalidConfig)
		}
		c.StateDir = filepath.Join(h, ".postboard", "state")
	}

	if c.StateBackend == BackendSQLite && c.SQLitePath == "" {
		c.SQLitePath = filepath.Join(c.StateDir, "postboard.db")
	}

	if c.StateBackend == BackendRedis && c.RedisAddr == "" {
		return fmt.Errorf("%w: redis-addr is required for the redis backend", domain.ErrInvalidConfig)
	}

	if c.MountPath == "" {
		c.MountPath = "/"
	}
	if !strings.HasPrefix(c.MountPath, "/") {
		return fmt.Errorf("%w: mount path %q must start with /", domain.ErrInvalidConfig, c.MountPath)
	}

	if c.APIBaseURL == "" {
		c.APIBaseURL = httpclient.DefaultBaseURL
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: http timeout must be positive", domain.ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", domain.ErrInvalidConfig)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("%w: log level %q", domain.ErrInvalidConfig, c.LogLevel)
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}
