package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bft-labs/postboard/internal/domain"
	"github.com/bft-labs/postboard/pkg/log"
	"github.com/bft-labs/postboard/pkg/persist"
)

// Factory builds a store instance. It runs at most once per successful
// Registry.Get for its id.
type Factory func(ctx context.Context, kv persist.KeyValueStore, logger log.Logger) (any, error)

// Registry creates stores on first use and hands out the same instance
// afterwards.
type Registry struct {
	mu        sync.Mutex
	factories map[string]Factory
	instances map[string]any
	kv        persist.KeyValueStore
	logger    log.Logger
}

// NewRegistry creates an empty registry whose stores persist to kv.
func NewRegistry(kv persist.KeyValueStore, logger log.Logger) *Registry {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Registry{
		factories: make(map[string]Factory),
		instances: make(map[string]any),
		kv:        kv,
		logger:    logger,
	}
}

// DefaultRegistry returns a registry with the posts store defined.
func DefaultRegistry(kv persist.KeyValueStore, logger log.Logger) *Registry {
	r := NewRegistry(kv, logger)
	// Cannot fail on a fresh registry.
	_ = r.Define(PostsStoreID, PostsFactory)
	return r
}

// PostsFactory is the Factory of the posts store.
func PostsFactory(ctx context.Context, kv persist.KeyValueStore, logger log.Logger) (any, error) {
	return NewPostsStore(ctx, kv, logger)
}

// Define registers factory under id.
func (r *Registry) Define(id string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[id]; exists {
		return fmt.Errorf("%w: %s", domain.ErrStoreAlreadyDefined, id)
	}
	r.factories[id] = factory
	return nil
}

// Has reports whether id is defined.
func (r *Registry) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.factories[id]
	return ok
}

// IDs returns the defined store ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Get returns the store registered under id, creating it on first use.
// A factory error is returned as is and the next Get tries again.
func (r *Registry) Get(ctx context.Context, id string) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if inst, ok := r.instances[id]; ok {
		return inst, nil
	}

	factory, ok := r.factories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrStoreNotDefined, id)
	}

	inst, err := factory(ctx, r.kv, r.logger)
	if err != nil {
		return nil, fmt.Errorf("create store %s: %w", id, err)
	}
	r.instances[id] = inst
	r.logger.Info("store created", log.String("store", id))
	return inst, nil
}

// UsePosts returns the posts store of r.
func UsePosts(ctx context.Context, r *Registry) (*PostsStore, error) {
	inst, err := r.Get(ctx, PostsStoreID)
	if err != nil {
		return nil, err
	}
	posts, ok := inst.(*PostsStore)
	if !ok {
		return nil, fmt.Errorf("store %s has type %T, want *PostsStore", PostsStoreID, inst)
	}
	return posts, nil
}
