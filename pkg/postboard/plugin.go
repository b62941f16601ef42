package postboard

import (
	"context"
	"fmt"
)

// Plugin extends an App before it is mounted.
//
// Install is called once, from App.Use, in the order plugins are used.
// Shutdown is called from App.Unmount in reverse install order and must
// release anything Install started.
type Plugin interface {
	// Name returns a unique identifier. Installing two plugins with the
	// same name fails with ErrPluginAlreadyInstalled.
	Name() string

	// Install registers the plugin's globals and provided values on app.
	Install(ctx context.Context, app *App) error

	// Shutdown releases plugin resources.
	Shutdown(ctx context.Context) error
}

// BasePlugin provides a no-op Shutdown. Embed it in plugins that hold no
// resources.
type BasePlugin struct{}

// Shutdown does nothing.
func (BasePlugin) Shutdown(ctx context.Context) error { return nil }

// PluginFunc adapts a function into a Plugin with a no-op Shutdown.
func PluginFunc(name string, install func(ctx context.Context, app *App) error) Plugin {
	return funcPlugin{name: name, install: install}
}

type funcPlugin struct {
	BasePlugin
	name    string
	install func(ctx context.Context, app *App) error
}

func (p funcPlugin) Name() string { return p.name }

func (p funcPlugin) Install(ctx context.Context, app *App) error {
	return p.install(ctx, app)
}

// safeCall runs fn and converts a panic into an error.
func safeCall(op, name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("plugin %s %s panicked: %v", name, op, r)
		}
	}()
	return fn()
}
