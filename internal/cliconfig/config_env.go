package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (POSTBOARD_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("listen", os.Getenv("POSTBOARD_LISTEN_ADDR"), &cfg.ListenAddr)
	s.setString("mount-path", os.Getenv("POSTBOARD_MOUNT_PATH"), &cfg.MountPath)
	s.setString("state-backend", os.Getenv("POSTBOARD_STATE_BACKEND"), &cfg.StateBackend)
	s.setString("state-dir", os.Getenv("POSTBOARD_STATE_DIR"), &cfg.StateDir)
	s.setString("sqlite-path", os.Getenv("POSTBOARD_SQLITE_PATH"), &cfg.SQLitePath)
	s.setString("redis-addr", os.Getenv("POSTBOARD_REDIS_ADDR"), &cfg.RedisAddr)
	s.setString("redis-prefix", os.Getenv("POSTBOARD_REDIS_PREFIX"), &cfg.RedisPrefix)
	s.setString("api-url", os.Getenv("POSTBOARD_API_BASE_URL"), &cfg.APIBaseURL)
	s.setString("log-level", os.Getenv("POSTBOARD_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("timeout", os.Getenv("POSTBOARD_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", os.Getenv("POSTBOARD_SHUTDOWN_TIMEOUT"), &cfg.ShutdownTimeout); err != nil {
		return err
	}

	return s.setBoolFromString("watch-config", os.Getenv("POSTBOARD_WATCH_CONFIG"), &cfg.WatchConfig)
}
