package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/postboard"
	"github.com/bft-labs/postboard/internal/cliconfig"
	"github.com/bft-labs/postboard/pkg/httpclient"
	"github.com/bft-labs/postboard/pkg/log"
	app "github.com/bft-labs/postboard/pkg/postboard"
	"github.com/bft-labs/postboard/pkg/store"
	"github.com/bft-labs/postboard/plugins/configwatcher"
)

const helpDescription = `
Serve a paginated posts board with a drag-reorderable reading list.

The board state (current page and reading list) is written through to a
key-value backend on every change: a directory of JSON files, SQLite,
Redis, or memory for throwaway runs.

Configure via file ($HOME/.postboard/config.toml or .yaml), POSTBOARD_*
environment variables, or flags. Flags win over env, env over the file.
`

var exampleUsage = strings.TrimSpace(`
  postboard --listen :8080 --state-backend sqlite --state-dir /var/lib/postboard
  postboard --config ./postboard.yaml --log-level debug
  postboard state --state-backend redis --redis-addr localhost:6379
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	logger := cliconfig.Logger()

	// loadConfig layers file, env and flags into cfg and returns the file used.
	loadConfig := func(cmd *cobra.Command) (string, map[string]bool, error) {
		cfgFile := cfgPath
		if cfgFile == "" {
			cfgFile = cliconfig.DefaultConfigPath()
		}

		changed := map[string]bool{}
		cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

		if cfgFile != "" && cliconfig.FileExists(cfgFile) {
			fc, err := cliconfig.LoadFileConfig(cfgFile)
			if err != nil {
				return "", nil, fmt.Errorf("load config: %w", err)
			}
			if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
				return "", nil, err
			}
		} else {
			cfgFile = ""
		}

		// Environment overrides the file; flags override both via changed.
		if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
			return "", nil, err
		}

		if err := cfg.Validate(); err != nil {
			return "", nil, err
		}
		return cfgFile, changed, nil
	}

	root := &cobra.Command{
		Use:          "postboard",
		Short:        "Serve a paginated posts board with a persisted reading list",
		Long:         strings.TrimSpace(helpDescription),
		Example:      exampleUsage,
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, changed, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			zl := log.NewZerologAdapterWithLogger(logger.Level(log.ParseLevel(cfg.LogLevel)))
			logger.Info().Interface("config", cfg).Msg("configuration")

			return serve(cmd.Context(), cfg, cfgFile, changed, zl)
		},
	}

	stateCmd := &cobra.Command{
		Use:   "state",
		Short: "Print the persisted board state as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := loadConfig(cmd); err != nil {
				return err
			}
			return printState(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
	root.AddCommand(stateCmd)

	// Flags
	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.postboard/config.toml)")
	pf.StringVar(&cfg.StateBackend, "state-backend", cfg.StateBackend, "state backend: memory, file, sqlite or redis")
	pf.StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "state directory for the file and sqlite backends (default: $HOME/.postboard/state)")
	pf.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "sqlite database path (defaults to <state-dir>/postboard.db)")
	pf.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis address for the redis backend")
	pf.StringVar(&cfg.RedisPrefix, "redis-prefix", cfg.RedisPrefix, "key prefix for the redis backend")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")

	root.Flags().StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "HTTP listen address")
	root.Flags().StringVar(&cfg.MountPath, "mount-path", cfg.MountPath, "route prefix the board is mounted on")
	root.Flags().StringVar(&cfg.APIBaseURL, "api-url", cfg.APIBaseURL, "base URL of the posts API")
	root.Flags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout for upstream requests")
	root.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "grace period for in-flight requests on shutdown")
	root.Flags().BoolVar(&cfg.WatchConfig, "watch-config", cfg.WatchConfig, "reload the log level when the config file changes")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error().Err(err).Msg("postboard")
		stop()
		os.Exit(1)
	}
}

// serve bootstraps the app and runs the HTTP server until ctx is done.
func serve(ctx context.Context, cfg cliconfig.Config, cfgFile string, changed map[string]bool, zl *log.ZerologAdapter) error {
	kv, err := cliconfig.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	var plugins []app.Plugin
	if cfg.WatchConfig && cfgFile != "" {
		plugins = append(plugins, configwatcher.New(
			configwatcher.Config{Path: cfgFile},
			levelReloader(zl, changed),
		))
	}

	clientCfg := httpclient.DefaultConfig()
	clientCfg.BaseURL = cfg.APIBaseURL
	clientCfg.Timeout = cfg.HTTPTimeout
	client := httpclient.New(clientCfg, httpclient.WithLogger(zl))

	host := app.NewRouterHost(chi.NewRouter()).AddElement(postboard.MountPoint, cfg.MountPath)
	a, err := postboard.Bootstrap(ctx, host, postboard.Config{
		Store:   kv,
		Client:  client,
		Plugins: plugins,
	}, app.WithLogger(zl))
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: host.Handler(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zl.Info("listening", log.String("addr", cfg.ListenAddr), log.String("mount", cfg.MountPath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zl.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	if unmountErr := a.Unmount(context.Background()); unmountErr != nil {
		err = errors.Join(err, unmountErr)
	}
	return err
}

// levelReloader re-reads the log level from the config file, unless it was
// set by flag.
func levelReloader(zl *log.ZerologAdapter, changed map[string]bool) configwatcher.ReloadFunc {
	return func(ctx context.Context, path string) error {
		if changed["log-level"] {
			return nil
		}
		fc, err := cliconfig.LoadFileConfig(path)
		if err != nil {
			return err
		}
		if fc.LogLevel != "" {
			zl.SetLevel(log.ParseLevel(fc.LogLevel))
		}
		return nil
	}
}

// printState loads the posts store from the configured backend and writes
// its state to w.
func printState(ctx context.Context, cfg cliconfig.Config, w io.Writer) error {
	kv, err := cliconfig.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	posts, err := store.UsePosts(ctx, store.DefaultRegistry(kv, nil))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(posts.State())
}
