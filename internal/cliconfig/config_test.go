package cliconfig

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bft-labs/postboard/internal/domain"
	"github.com/bft-labs/postboard/pkg/httpclient"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %v, want %v", cfg.ListenAddr, DefaultListenAddr)
	}
	if cfg.StateBackend != BackendFile {
		t.Errorf("StateBackend = %v, want file", cfg.StateBackend)
	}
	if cfg.APIBaseURL != httpclient.DefaultBaseURL {
		t.Errorf("APIBaseURL = %v, want %v", cfg.APIBaseURL, httpclient.DefaultBaseURL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout = %v, want 15s", cfg.HTTPTimeout)
	}
	if !cfg.WatchConfig {
		t.Error("WatchConfig = false, want true")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.StateDir = "/tmp/postboard"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults with state dir", func(c *Config) {}, false},
		{"memory backend", func(c *Config) { c.StateBackend = BackendMemory }, false},
		{"redis backend", func(c *Config) { c.StateBackend = BackendRedis }, false},
		{"redis without address", func(c *Config) {
			c.StateBackend = BackendRedis
			c.RedisAddr = ""
		}, true},
		{"unknown backend", func(c *Config) { c.StateBackend = "etcd" }, true},
		{"relative mount path", func(c *Config) { c.MountPath = "app" }, true},
		{"zero http timeout", func(c *Config) { c.HTTPTimeout = 0 }, true},
		{"zero shutdown timeout", func(c *Config) { c.ShutdownTimeout = 0 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"upper case log level", func(c *Config) { c.LogLevel = "DEBUG" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfig_Validate_Derivations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StateBackend = BackendSQLite
	cfg.StateDir = "/var/lib/postboard"
	cfg.MountPath = ""
	cfg.APIBaseURL = "http://api.local/"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if want := filepath.Join("/var/lib/postboard", "postboard.db"); cfg.SQLitePath != want {
		t.Errorf("SQLitePath = %v, want %v", cfg.SQLitePath, want)
	}
	if cfg.MountPath != "/" {
		t.Errorf("MountPath = %v, want /", cfg.MountPath)
	}
	if cfg.APIBaseURL != "http://api.local" {
		t.Errorf("APIBaseURL = %v, want trailing slash trimmed", cfg.APIBaseURL)
	}
}

func TestConfig_Validate_DerivesStateDirFromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if want := filepath.Join(home, ".postboard", "state"); cfg.StateDir != want {
		t.Errorf("StateDir = %v, want %v", cfg.StateDir, want)
	}
}
