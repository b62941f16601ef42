package domain

import "fmt"

// DefaultPage is the current page of a store with nothing persisted.
const DefaultPage = 1

// PostsState is the in-memory state of the posts store.
// Transitions return a new value and never share the receiver's backing array.
type PostsState struct {
	CurrentPage int    `json:"currentPage"`
	DragList    []Post `json:"dragList"`
}

// DefaultPostsState returns the state of a store with nothing persisted.
func DefaultPostsState() PostsState {
	return PostsState{CurrentPage: DefaultPage, DragList: []Post{}}
}

// Clone returns a deep copy of the state.
func (s PostsState) Clone() PostsState {
	list := make([]Post, len(s.DragList))
	copy(list, s.DragList)
	return PostsState{CurrentPage: s.CurrentPage, DragList: list}
}

// WithPage returns the state with CurrentPage set to page. No bounds check.
func (s PostsState) WithPage(page int) PostsState {
	next := s.Clone()
	next.CurrentPage = page
	return next
}

// WithAppended returns the state with post added to the end of the drag list.
func (s PostsState) WithAppended(post Post) PostsState {
	next := s.Clone()
	next.DragList = append(next.DragList, post)
	return next
}

// WithSwapped returns the state with the posts at draggable and droppable
// exchanged. This is the reorder performed when a post is dropped onto
// another one: [A B C] with (0, 2) becomes [C B A].
func (s PostsState) WithSwapped(draggable, droppable int) (PostsState, error) {
	if err := s.checkIndex(draggable); err != nil {
		return s, err
	}
	if err := s.checkIndex(droppable); err != nil {
		return s, err
	}
	next := s.Clone()
	next.DragList[draggable], next.DragList[droppable] = next.DragList[droppable], next.DragList[draggable]
	return next, nil
}

// WithMoved returns the state with the post at from moved to index to,
// shifting the posts in between by one: [A B C] with (0, 2) becomes [B C A].
func (s PostsState) WithMoved(from, to int) (PostsState, error) {
	if err := s.checkIndex(from); err != nil {
		return s, err
	}
	if err := s.checkIndex(to); err != nil {
		return s, err
	}
	next := s.Clone()
	moved := next.DragList[from]
	if from < to {
		copy(next.DragList[from:to], next.DragList[from+1:to+1])
	} else {
		copy(next.DragList[to+1:from+1], next.DragList[to:from])
	}
	next.DragList[to] = moved
	return next, nil
}

func (s PostsState) checkIndex(i int) error {
	if i < 0 || i >= len(s.DragList) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(s.DragList))
	}
	return nil
}
