// Package storeplugin installs the state-management layer into a postboard
// App. It creates a store.Registry bound to a key-value backend and provides
// it to the component tree under postboard.StoresKey.
package storeplugin

import (
	"context"
	"fmt"

	"github.com/bft-labs/postboard/pkg/persist"
	"github.com/bft-labs/postboard/pkg/postboard"
	"github.com/bft-labs/postboard/pkg/store"
)

// Name is the plugin identifier.
const Name = "stores"

// Plugin provides a store registry to the app.
type Plugin struct {
	postboard.BasePlugin

	kv       persist.KeyValueStore
	registry *store.Registry
	extra    map[string]store.Factory
	eager    bool
}

// Option configures the plugin.
type Option func(*Plugin)

// WithRegistry installs r instead of a default registry.
func WithRegistry(r *store.Registry) Option {
	return func(p *Plugin) {
		p.registry = r
	}
}

// WithStore defines an additional store on the installed registry.
func WithStore(id string, factory store.Factory) Option {
	return func(p *Plugin) {
		p.extra[id] = factory
	}
}

// WithEagerInit creates every defined store during Install, so that a
// backend that cannot be read fails the bootstrap instead of the first
// request.
func WithEagerInit() Option {
	return func(p *Plugin) {
		p.eager = true
	}
}

// New creates the plugin for stores persisted to kv.
func New(kv persist.KeyValueStore, opts ...Option) *Plugin {
	p := &Plugin{
		kv:    kv,
		extra: make(map[string]store.Factory),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string { return Name }

// Install provides the registry under postboard.StoresKey.
func (p *Plugin) Install(ctx context.Context, app *postboard.App) error {
	if p.registry == nil {
		if p.kv == nil {
			return fmt.Errorf("storeplugin: no key-value store configured")
		}
		p.registry = store.DefaultRegistry(p.kv, app.Logger())
	}

	for id, factory := range p.extra {
		if err := p.registry.Define(id, factory); err != nil {
			return err
		}
	}

	if p.eager {
		for _, id := range p.registry.IDs() {
			if _, err := p.registry.Get(ctx, id); err != nil {
				return err
			}
		}
	}

	app.Provide(postboard.StoresKey, p.registry)
	return nil
}

// Registry returns the installed registry, or nil before Install.
func (p *Plugin) Registry() *store.Registry {
	return p.registry
}

// Ensure Plugin implements postboard.Plugin.
var _ postboard.Plugin = (*Plugin)(nil)
