package configwatcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/bft-labs/postboard/pkg/postboard"
)

func newApp(t *testing.T) *postboard.App {
	t.Helper()
	a, err := postboard.New(postboard.ComponentFunc{ComponentName: "Root"})
	if err != nil {
		t.Fatalf("postboard.New() error = %v", err)
	}
	return a
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestPlugin_ReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`log_level = "info"`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var (
		mu   sync.Mutex
		seen []string
	)
	reload := func(ctx context.Context, p string) error {
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		mu.Lock()
		seen = append(seen, string(data))
		mu.Unlock()
		return nil
	}

	plugin := New(Config{Path: path, DebounceDelay: 20 * time.Millisecond}, reload)
	ctx := context.Background()
	if err := newApp(t).Use(ctx, plugin); err != nil {
		t.Fatalf("Use() error = %v", err)
	}

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`log_level = "debug"`), 0644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool { return plugin.Reloads() >= 1 })

	mu.Lock()
	last := seen[len(seen)-1]
	mu.Unlock()
	if last != `log_level = "debug"` {
		t.Errorf("reload saw %q, want the new contents", last)
	}

	if err := plugin.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestPlugin_ReloadErrorKeepsWatching(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("a: 1"), 0644); err != nil {
		t.Fatal(err)
	}

	plugin := New(Config{Path: path, DebounceDelay: 10 * time.Millisecond},
		func(ctx context.Context, p string) error { return errors.New("bad config") })
	ctx := context.Background()
	if err := newApp(t).Use(ctx, plugin); err != nil {
		t.Fatalf("Use() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("a: 2"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return plugin.Reloads() >= 1 })

	if err := os.WriteFile(path, []byte("a: 3"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return plugin.Reloads() >= 2 })

	if err := plugin.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestPlugin_OutlivesInstallContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`log_level = "info"`), 0644); err != nil {
		t.Fatal(err)
	}

	var live atomic.Bool
	plugin := New(Config{Path: path, DebounceDelay: 10 * time.Millisecond},
		func(ctx context.Context, p string) error {
			live.Store(ctx.Err() == nil)
			return nil
		})
	installCtx, cancel := context.WithCancel(context.Background())
	if err := newApp(t).Use(installCtx, plugin); err != nil {
		t.Fatalf("Use() error = %v", err)
	}
	cancel()

	if err := os.WriteFile(path, []byte(`log_level = "warn"`), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return plugin.Reloads() >= 1 })
	if !live.Load() {
		t.Error("reload ran with a cancelled context")
	}

	if err := plugin.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestPlugin_DisabledWithoutPath(t *testing.T) {
	defer goleak.VerifyNone(t)

	plugin := New(DefaultConfig(), func(context.Context, string) error { return nil })
	if err := newApp(t).Use(context.Background(), plugin); err != nil {
		t.Fatalf("Use() error = %v", err)
	}
	if err := plugin.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestPlugin_MissingDirectory(t *testing.T) {
	plugin := New(Config{Path: filepath.Join(t.TempDir(), "nope", "config.toml")},
		func(context.Context, string) error { return nil })
	if err := newApp(t).Use(context.Background(), plugin); err == nil {
		t.Error("Use() succeeded for a directory that does not exist")
	}
}

func TestPlugin_Name(t *testing.T) {
	if got := New(DefaultConfig(), nil).Name(); got != "configwatcher" {
		t.Errorf("Name() = %q, want configwatcher", got)
	}
}
