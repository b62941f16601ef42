package postboard

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bft-labs/postboard/pkg/log"
)

// Component renders a tree of HTTP handlers.
type Component interface {
	Name() string
	Render(ctx context.Context, sc SetupContext) (http.Handler, error)
}

// SetupContext is what a component sees while it is rendered.
type SetupContext interface {
	// Inject returns the value provided under key.
	Inject(key string) (any, bool)
	// Logger returns the app logger.
	Logger() log.Logger
}

// ComponentFunc adapts a function into a Component.
type ComponentFunc struct {
	ComponentName string
	RenderFunc    func(ctx context.Context, sc SetupContext) (http.Handler, error)
}

// Name returns the component name.
func (c ComponentFunc) Name() string { return c.ComponentName }

// Render calls RenderFunc.
func (c ComponentFunc) Render(ctx context.Context, sc SetupContext) (http.Handler, error) {
	return c.RenderFunc(ctx, sc)
}

// Inject returns the value provided under key as a T.
// It fails when nothing is provided under key or the value has another type.
func Inject[T any](sc SetupContext, key string) (T, error) {
	var zero T
	v, ok := sc.Inject(key)
	if !ok {
		return zero, fmt.Errorf("inject %q: nothing provided", key)
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("inject %q: provided value is %T, want %T", key, v, zero)
	}
	return t, nil
}
