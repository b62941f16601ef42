package postboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/bft-labs/postboard/internal/app"
	"github.com/bft-labs/postboard/internal/domain"
	"github.com/bft-labs/postboard/internal/ports"
	"github.com/bft-labs/postboard/pkg/log"
)

// App hosts a component tree. Use New to create an instance, Use to add
// plugins, then Mount to render and attach the tree.
type App struct {
	id        string
	root      Component
	logger    log.Logger
	lifecycle *app.Lifecycle

	mu        sync.RWMutex
	plugins   []Plugin
	installed map[string]bool
	provides  map[string]any
	globals   map[string]any
	element   Element
	handler   http.Handler
}

// New creates an App from its root component.
// The App is created in StateCreated.
func New(root Component, opts ...Option) (*App, error) {
	if root == nil {
		return nil, errors.New("postboard: root component is nil")
	}

	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	id := o.instanceID
	if id == "" {
		id = uuid.NewString()
	}

	emitter := &eventEmitterWrapper{handler: o.eventHandler}

	return &App{
		id:        id,
		root:      root,
		logger:    o.logger,
		lifecycle: app.NewLifecycle(o.logger, emitter),
		installed: make(map[string]bool),
		provides:  make(map[string]any),
		globals:   make(map[string]any),
	}, nil
}

// ID returns the instance id.
func (a *App) ID() string { return a.id }

// Logger returns the app logger.
func (a *App) Logger() log.Logger { return a.logger }

// Root returns the root component.
func (a *App) Root() Component { return a.root }

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (a *App) Status() State {
	return convertState(a.lifecycle.State())
}

// Use installs a plugin. Plugins are installed in call order and only
// before the App is mounted.
func (a *App) Use(ctx context.Context, p Plugin) error {
	if !a.lifecycle.CanMount() {
		return domain.ErrAlreadyMounted
	}

	name := p.Name()
	a.mu.Lock()
	if a.installed[name] {
		a.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrPluginAlreadyInstalled, name)
	}
	a.installed[name] = true
	a.mu.Unlock()

	if err := safeCall("install", name, func() error { return p.Install(ctx, a) }); err != nil {
		a.mu.Lock()
		delete(a.installed, name)
		a.mu.Unlock()
		a.logger.Error("plugin install failed",
			ports.String("plugin", name),
			ports.Err(err))
		return err
	}

	a.mu.Lock()
	a.plugins = append(a.plugins, p)
	a.mu.Unlock()

	a.logger.Info("plugin installed", ports.String("plugin", name))
	return nil
}

// Plugins returns the names of installed plugins in install order.
func (a *App) Plugins() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	names := make([]string, len(a.plugins))
	for i, p := range a.plugins {
		names[i] = p.Name()
	}
	return names
}

// Provide makes value available to every component under key.
// A later call with the same key replaces the value.
func (a *App) Provide(key string, value any) *App {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.provides[key] = value
	return a
}

// Inject returns the value provided under key.
func (a *App) Inject(key string) (any, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.provides[key]
	return v, ok
}

// SetGlobal sets an app-wide property.
func (a *App) SetGlobal(key string, value any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.globals[key] = value
}

// Global returns an app-wide property.
func (a *App) Global(key string) (any, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.globals[key]
	return v, ok
}

// Mount renders the root component and attaches it to the element of host
// with the given id. An App can be mounted once.
func (a *App) Mount(ctx context.Context, host Host, elementID string) error {
	if !a.lifecycle.CanMount() {
		return domain.ErrAlreadyMounted
	}
	if err := a.lifecycle.TransitionTo(app.StateMounting, "Mount() called"); err != nil {
		return err
	}

	el, ok := host.Element(elementID)
	if !ok {
		err := fmt.Errorf("%w: %s", domain.ErrMountPointNotFound, elementID)
		_ = a.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		return err
	}

	h, err := a.root.Render(ctx, a)
	if err != nil {
		err = fmt.Errorf("render %s: %w", a.root.Name(), err)
		_ = a.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		return err
	}

	if err := el.Attach(h); err != nil {
		_ = a.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		return err
	}

	a.mu.Lock()
	a.element = el
	a.handler = h
	a.mu.Unlock()

	if err := a.lifecycle.TransitionTo(app.StateMounted, "attached to "+elementID); err != nil {
		return err
	}

	a.logger.Info("app mounted",
		ports.String("component", a.root.Name()),
		ports.String("element", elementID),
		ports.String("instance", a.id))
	return nil
}

// Handler returns the rendered component tree, or nil before Mount.
func (a *App) Handler() http.Handler {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.handler
}

// Unmount shuts plugins down in reverse install order. It may be called on
// an App that was never mounted, or whose Mount failed, to release plugins.
// Shutdown errors are logged and joined into the returned error.
func (a *App) Unmount(ctx context.Context) error {
	if !a.lifecycle.CanUnmount() {
		return domain.ErrNotMounted
	}
	if err := a.lifecycle.TransitionTo(app.StateUnmounting, "Unmount() called"); err != nil {
		return err
	}

	a.mu.RLock()
	plugins := make([]Plugin, len(a.plugins))
	copy(plugins, a.plugins)
	a.mu.RUnlock()

	var errs []error
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := safeCall("shutdown", p.Name(), func() error { return p.Shutdown(ctx) }); err != nil {
			a.logger.Error("plugin shutdown failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			errs = append(errs, err)
		} else {
			a.logger.Info("plugin shutdown complete", ports.String("plugin", p.Name()))
		}
	}

	_ = a.lifecycle.TransitionTo(app.StateUnmounted, "unmounted")
	return errors.Join(errs...)
}
