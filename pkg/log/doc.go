// Package log provides the logging abstraction shared by postboard components.
//
// Components depend on the Logger interface only. The zerolog adapter is the
// default for the CLI; the no-op logger is the default for libraries and tests.
//
// # Usage
//
//	logger := log.NewZerologAdapter()
//	logger.Info("store hydrated", log.Int("currentPage", 1))
//
// Wrap an existing zerolog.Logger to keep its output and level:
//
//	logger := log.NewZerologAdapterWithLogger(zl)
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package log
