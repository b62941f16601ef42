package postboard

import (
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Element is a named attachment point for a rendered component tree.
type Element interface {
	ID() string
	Attach(h http.Handler) error
}

// Host resolves elements by id.
type Host interface {
	Element(id string) (Element, bool)
}

// RouterHost is a Host backed by a chi router. Each element maps an id
// such as "#app" to a route prefix.
type RouterHost struct {
	router chi.Router

	mu       sync.Mutex
	elements map[string]string
	attached map[string]bool
}

// NewRouterHost creates a host on router. A nil router gets a new chi mux.
func NewRouterHost(router chi.Router) *RouterHost {
	if router == nil {
		router = chi.NewRouter()
	}
	return &RouterHost{
		router:   router,
		elements: make(map[string]string),
		attached: make(map[string]bool),
	}
}

// AddElement declares element id at route prefix path.
func (h *RouterHost) AddElement(id, path string) *RouterHost {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.elements[id] = path
	return h
}

// Element returns the element with the given id.
func (h *RouterHost) Element(id string) (Element, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	path, ok := h.elements[id]
	if !ok {
		return nil, false
	}
	return &routerElement{host: h, id: id, path: path}, true
}

// ElementIDs returns the declared element ids, sorted.
func (h *RouterHost) ElementIDs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]string, 0, len(h.elements))
	for id := range h.elements {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Handler returns the underlying router.
func (h *RouterHost) Handler() http.Handler {
	return h.router
}

type routerElement struct {
	host *RouterHost
	id   string
	path string
}

func (e *routerElement) ID() string { return e.id }

func (e *routerElement) Attach(handler http.Handler) error {
	e.host.mu.Lock()
	defer e.host.mu.Unlock()
	if e.host.attached[e.id] {
		return fmt.Errorf("element %s: already has a component attached", e.id)
	}
	e.host.router.Mount(e.path, handler)
	e.host.attached[e.id] = true
	return nil
}
