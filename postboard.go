// Package postboard wires the postboard application together.
//
// Example usage:
//
//	host := app.NewRouterHost(chi.NewRouter()).AddElement(postboard.MountPoint, "/")
//	a, err := postboard.Bootstrap(ctx, host, postboard.Config{
//	    Store:  kv,
//	    Client: httpclient.New(httpclient.DefaultConfig()),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer a.Unmount(ctx)
//	http.ListenAndServe(":8080", host.Handler())
package postboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/bft-labs/postboard/internal/web"
	"github.com/bft-labs/postboard/pkg/httpclient"
	"github.com/bft-labs/postboard/pkg/persist"
	app "github.com/bft-labs/postboard/pkg/postboard"
	httpplugin "github.com/bft-labs/postboard/plugins/httpclient"
	"github.com/bft-labs/postboard/plugins/storeplugin"
)

// App is the application shell.
type App = app.App

// Option configures optional behavior of the App.
type Option = app.Option

// MountPoint is the element the root component is mounted on.
const MountPoint = app.MountPoint

// Config holds what Bootstrap needs to build the application.
type Config struct {
	// Store is the key-value backend the stores persist to. Required.
	Store persist.KeyValueStore

	// Client is the preconfigured HTTP client. If nil, a client with
	// httpclient.DefaultConfig is built.
	Client *httpclient.Client

	// Root is the root component. Default: the postboard web component.
	Root app.Component

	// ElementID is the element to mount on. Default: MountPoint.
	ElementID string

	// Plugins are installed after the built-in plugins, before mounting.
	Plugins []app.Plugin
}

// Bootstrap builds the application and mounts it on host. The steps run in
// order: build the app from the root component, install the state-management
// plugin, install the HTTP client plugin, provide the client under
// app.HTTPClientKey, and mount on the configured element. On failure the
// plugins installed so far are shut down and the error is returned.
func Bootstrap(ctx context.Context, host app.Host, cfg Config, opts ...Option) (*App, error) {
	if cfg.Store == nil {
		return nil, errors.New("postboard: no key-value store configured")
	}
	if cfg.Root == nil {
		cfg.Root = web.NewRoot()
	}
	if cfg.ElementID == "" {
		cfg.ElementID = MountPoint
	}

	a, err := app.New(cfg.Root, opts...)
	if err != nil {
		return nil, fmt.Errorf("create app: %w", err)
	}

	if err := bootstrap(ctx, a, host, cfg); err != nil {
		if unmountErr := a.Unmount(ctx); unmountErr != nil {
			err = errors.Join(err, unmountErr)
		}
		return nil, err
	}
	return a, nil
}

func bootstrap(ctx context.Context, a *App, host app.Host, cfg Config) error {
	if err := a.Use(ctx, storeplugin.New(cfg.Store)); err != nil {
		return fmt.Errorf("install stores: %w", err)
	}

	var hp *httpplugin.Plugin
	if cfg.Client != nil {
		hp = httpplugin.New(cfg.Client)
	} else {
		hp = httpplugin.NewWithConfig(httpclient.DefaultConfig())
	}
	if err := a.Use(ctx, hp); err != nil {
		return fmt.Errorf("install http client: %w", err)
	}

	a.Provide(app.HTTPClientKey, hp.Client())

	for _, p := range cfg.Plugins {
		if err := a.Use(ctx, p); err != nil {
			return fmt.Errorf("install %s: %w", p.Name(), err)
		}
	}

	if err := a.Mount(ctx, host, cfg.ElementID); err != nil {
		return fmt.Errorf("mount: %w", err)
	}
	return nil
}
