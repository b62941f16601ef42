// Package configwatcher reloads configuration when its file changes.
// It watches the directory holding the config file with fsnotify, so that
// editors which replace the file by rename are seen too, and calls a reload
// function after a short debounce.
package configwatcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/postboard/internal/ports"
	"github.com/bft-labs/postboard/pkg/log"
	"github.com/bft-labs/postboard/pkg/postboard"
)

// Name is the plugin identifier.
const Name = "configwatcher"

// ReloadFunc re-reads the config file at path and applies it.
type ReloadFunc func(ctx context.Context, path string) error

// Config holds configuration options for the config watcher plugin.
type Config struct {
	// Path is the config file to watch. Empty disables the watcher.
	Path string

	// DebounceDelay is the delay to wait after a file change before reloading.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
	}
}

// Plugin watches one config file.
type Plugin struct {
	path          string
	debounceDelay time.Duration
	reload        ReloadFunc

	logger  log.Logger
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	reloads atomic.Int64
}

// New creates a config watcher plugin that calls reload on change.
func New(cfg Config, reload ReloadFunc) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Plugin{
		path:          cfg.Path,
		debounceDelay: cfg.DebounceDelay,
		reload:        reload,
		logger:        log.NewNoopLogger(),
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return Name
}

// Install starts watching the config file.
func (p *Plugin) Install(ctx context.Context, app *postboard.App) error {
	p.logger = app.Logger()

	if p.path == "" || p.reload == nil {
		p.logger.Warn("config watcher disabled: no config file")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("configwatcher: create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("configwatcher: watch %s: %w", filepath.Dir(p.path), err)
	}
	p.watcher = watcher

	// The loop outlives Install; only Shutdown stops it.
	watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p.cancel = cancel

	p.wg.Add(1)
	go p.watchLoop(watchCtx)

	p.logger.Info("config watcher started", ports.String("path", p.path))
	return nil
}

// Shutdown stops the watcher and waits for the loop to exit.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	if p.watcher != nil {
		err := p.watcher.Close()
		p.watcher = nil
		return err
	}
	return nil
}

// Reloads returns how many reloads have completed, successful or not.
func (p *Plugin) Reloads() int64 {
	return p.reloads.Load()
}

func (p *Plugin) watchLoop(ctx context.Context) {
	defer p.wg.Done()

	debounce := time.NewTimer(p.debounceDelay)
	debounce.Stop()
	defer debounce.Stop()

	name := filepath.Base(p.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce.Reset(p.debounceDelay)

		case <-debounce.C:
			p.runReload(ctx)

		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("config watcher error", ports.Err(err))
		}
	}
}

func (p *Plugin) runReload(ctx context.Context) {
	defer p.reloads.Add(1)
	if err := p.reload(ctx, p.path); err != nil {
		p.logger.Error("config reload failed",
			ports.String("path", p.path),
			ports.Err(err))
		return
	}
	p.logger.Info("config reloaded", ports.String("path", p.path))
}

// Ensure Plugin implements postboard.Plugin.
var _ postboard.Plugin = (*Plugin)(nil)
