package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bft-labs/postboard/internal/ports"
	"github.com/bft-labs/postboard/pkg/postboard"
	"github.com/bft-labs/postboard/pkg/store"
)

// ComponentName is the name of the root component.
const ComponentName = "App"

// Root is the root component. It needs a store registry provided under
// postboard.StoresKey and a posts source under postboard.HTTPClientKey.
type Root struct{}

// NewRoot creates the root component.
func NewRoot() *Root {
	return &Root{}
}

// Name returns the component name.
func (*Root) Name() string { return ComponentName }

// Render resolves the posts store and HTTP client and returns the API router.
func (*Root) Render(ctx context.Context, sc postboard.SetupContext) (http.Handler, error) {
	registry, err := postboard.Inject[*store.Registry](sc, postboard.StoresKey)
	if err != nil {
		return nil, err
	}
	posts, err := store.UsePosts(ctx, registry)
	if err != nil {
		return nil, err
	}
	source, err := postboard.Inject[ports.PostsSource](sc, postboard.HTTPClientKey)
	if err != nil {
		return nil, err
	}

	h := &handlers{posts: posts, source: source, logger: sc.Logger()}
	return h.routes(), nil
}

func (h *handlers) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.healthz)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.getState)
		r.Put("/page", h.putPage)
		r.Get("/posts", h.getPosts)

		r.Route("/drag-list", func(r chi.Router) {
			r.Post("/", h.appendDragList)
			r.Post("/swap", h.swapDragList)
			r.Post("/move", h.moveDragList)
		})
	})
	return r
}

// Ensure Root implements postboard.Component.
var _ postboard.Component = (*Root)(nil)
