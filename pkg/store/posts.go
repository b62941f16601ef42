package store

import (
	"context"
	"sync"

	"github.com/bft-labs/postboard/internal/domain"
	"github.com/bft-labs/postboard/pkg/log"
	"github.com/bft-labs/postboard/pkg/persist"
)

// PostsStoreID is the key the posts store is registered under.
const PostsStoreID = "posts"

// Storage keys of the posts store.
const (
	CurrentPageKey = "currentPage"
	DragListKey    = "dragList"
)

// Post is one item of the drag list.
type Post = domain.Post

// PostsState is a snapshot of the posts store.
type PostsState = domain.PostsState

// PostsStore holds the current page and the drag list.
// Methods are safe for concurrent use; mutations are serialized.
type PostsStore struct {
	mu     sync.RWMutex
	state  domain.PostsState
	kv     persist.KeyValueStore
	logger log.Logger
}

// NewPostsStore reads the persisted state once and returns a hydrated store.
// A missing or zero current page becomes 1; a missing or null drag list
// becomes empty.
func NewPostsStore(ctx context.Context, kv persist.KeyValueStore, logger log.Logger) (*PostsStore, error) {
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	state := domain.DefaultPostsState()

	page, ok, err := persist.Load[int](ctx, kv, CurrentPageKey)
	if err != nil {
		return nil, err
	}
	if ok && page != 0 {
		state.CurrentPage = page
	}

	list, ok, err := persist.Load[[]domain.Post](ctx, kv, DragListKey)
	if err != nil {
		return nil, err
	}
	if ok && list != nil {
		state.DragList = list
	}

	logger.Debug("posts store hydrated",
		log.Int("currentPage", state.CurrentPage),
		log.Int("dragList", len(state.DragList)),
	)

	return &PostsStore{state: state, kv: kv, logger: logger}, nil
}

// CurrentPage returns the current page.
func (s *PostsStore) CurrentPage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentPage
}

// DragList returns a copy of the drag list.
func (s *PostsStore) DragList() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone().DragList
}

// State returns a snapshot of the whole store.
func (s *PostsStore) State() PostsState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// PageChange sets the current page and persists it under "currentPage".
func (s *PostsStore) PageChange(ctx context.Context, page int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.WithPage(page)
	if err := persist.Save(ctx, s.kv, CurrentPageKey, next.CurrentPage); err != nil {
		s.logger.Error("persist current page", log.Int("page", page), log.Err(err))
		return err
	}
	s.state = next
	return nil
}

// SetDragList appends post to the drag list and persists the whole list
// under "dragList".
func (s *PostsStore) SetDragList(ctx context.Context, post Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commitList(ctx, s.state.WithAppended(post))
}

// ChangeDragList drops the post at draggable onto the post at droppable:
// the two exchange places. Indices outside the list return
// domain.ErrIndexOutOfRange and change nothing.
func (s *PostsStore) ChangeDragList(ctx context.Context, draggable, droppable int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.WithSwapped(draggable, droppable)
	if err != nil {
		return err
	}
	return s.commitList(ctx, next)
}

// MoveDragList moves the post at from to index to, shifting the posts in
// between by one place.
func (s *PostsStore) MoveDragList(ctx context.Context, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.WithMoved(from, to)
	if err != nil {
		return err
	}
	return s.commitList(ctx, next)
}

// commitList writes next.DragList and then makes next current.
// Caller must hold s.mu.
func (s *PostsStore) commitList(ctx context.Context, next domain.PostsState) error {
	if err := persist.Save(ctx, s.kv, DragListKey, next.DragList); err != nil {
		s.logger.Error("persist drag list", log.Int("len", len(next.DragList)), log.Err(err))
		return err
	}
	s.state = next
	return nil
}
