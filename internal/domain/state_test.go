package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	postA = Post(`{"id":1,"title":"A"}`)
	postB = Post(`{"id":2,"title":"B"}`)
	postC = Post(`{"id":3,"title":"C"}`)
	postD = Post(`{"id":4,"title":"D"}`)
)

// splice mirrors Array.prototype.splice for in-range arguments: it removes
// deleteCount items at start, inserts items in their place and returns the
// resulting list together with the removed items.
func splice(list []Post, start, deleteCount int, items ...Post) ([]Post, []Post) {
	removed := append([]Post(nil), list[start:start+deleteCount]...)
	out := append([]Post(nil), list[:start]...)
	out = append(out, items...)
	out = append(out, list[start+deleteCount:]...)
	return out, removed
}

// dropOntoReference evaluates list[j] = list.splice(i, 1, list[j])[0] the
// way a drop handler written with splice behaves: the assignment target and
// the inserted list[j] are read before the splice runs.
func dropOntoReference(list []Post, i, j int) []Post {
	captured := list[j]
	out, removed := splice(list, i, 1, captured)
	out[j] = removed[0]
	return out
}

func TestDefaultPostsState(t *testing.T) {
	s := DefaultPostsState()
	if s.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1", s.CurrentPage)
	}
	if s.DragList == nil || len(s.DragList) != 0 {
		t.Errorf("DragList = %#v, want empty non-nil slice", s.DragList)
	}
}

func TestPostsState_WithPage(t *testing.T) {
	s := DefaultPostsState()
	for _, page := range []int{5, 0, -3, 1} {
		next := s.WithPage(page)
		if next.CurrentPage != page {
			t.Errorf("WithPage(%d).CurrentPage = %d", page, next.CurrentPage)
		}
	}
	if s.CurrentPage != 1 {
		t.Errorf("receiver modified: CurrentPage = %d", s.CurrentPage)
	}

	once := s.WithPage(7)
	twice := once.WithPage(7)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("WithPage not idempotent (-once +twice):\n%s", diff)
	}
}

func TestPostsState_WithAppended(t *testing.T) {
	s := PostsState{CurrentPage: 1, DragList: []Post{postA, postB, postC}}
	next := s.WithAppended(postD)

	if diff := cmp.Diff([]Post{postA, postB, postC, postD}, next.DragList); diff != "" {
		t.Errorf("WithAppended (-want +got):\n%s", diff)
	}
	if len(s.DragList) != 3 {
		t.Errorf("receiver modified: %v", s.DragList)
	}
}

func TestPostsState_WithAppended_DoesNotAlias(t *testing.T) {
	list := make([]Post, 1, 4)
	list[0] = postA
	s := PostsState{DragList: list}

	first := s.WithAppended(postB)
	second := s.WithAppended(postC)

	if string(first.DragList[1]) != string(postB) {
		t.Errorf("first append overwritten: %v", first.DragList)
	}
	if string(second.DragList[1]) != string(postC) {
		t.Errorf("second append = %v", second.DragList)
	}
}

func TestPostsState_WithSwapped_MatchesDropReference(t *testing.T) {
	base := []Post{postA, postB, postC, postD}

	for i := range base {
		for j := range base {
			s := PostsState{DragList: append([]Post(nil), base...)}
			got, err := s.WithSwapped(i, j)
			if err != nil {
				t.Fatalf("WithSwapped(%d, %d) error: %v", i, j, err)
			}
			want := dropOntoReference(base, i, j)
			if diff := cmp.Diff(want, got.DragList); diff != "" {
				t.Errorf("WithSwapped(%d, %d) (-reference +got):\n%s", i, j, diff)
			}
		}
	}
}

func TestPostsState_WithSwapped_Literal(t *testing.T) {
	tests := []struct {
		name      string
		from, to  int
		wantOrder []Post
	}{
		{"forward", 0, 2, []Post{postC, postB, postA}},
		{"backward", 2, 0, []Post{postC, postB, postA}},
		{"adjacent", 1, 2, []Post{postA, postC, postB}},
		{"same index", 1, 1, []Post{postA, postB, postC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := PostsState{DragList: []Post{postA, postB, postC}}
			got, err := s.WithSwapped(tt.from, tt.to)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.wantOrder, got.DragList); diff != "" {
				t.Errorf("order (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]Post{postA, postB, postC}, s.DragList); diff != "" {
				t.Errorf("receiver modified (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPostsState_WithMoved(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []Post
	}{
		{"to end", 0, 3, []Post{postB, postC, postD, postA}},
		{"to start", 3, 0, []Post{postD, postA, postB, postC}},
		{"middle forward", 1, 2, []Post{postA, postC, postB, postD}},
		{"middle backward", 2, 1, []Post{postA, postC, postB, postD}},
		{"same index", 2, 2, []Post{postA, postB, postC, postD}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := PostsState{DragList: []Post{postA, postB, postC, postD}}
			got, err := s.WithMoved(tt.from, tt.to)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got.DragList); diff != "" {
				t.Errorf("order (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPostsState_IndexOutOfRange(t *testing.T) {
	s := PostsState{CurrentPage: 2, DragList: []Post{postA, postB}}

	cases := [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {5, 7}}
	for _, c := range cases {
		if _, err := s.WithSwapped(c[0], c[1]); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("WithSwapped(%d, %d) error = %v, want ErrIndexOutOfRange", c[0], c[1], err)
		}
		if _, err := s.WithMoved(c[0], c[1]); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("WithMoved(%d, %d) error = %v, want ErrIndexOutOfRange", c[0], c[1], err)
		}
	}

	empty := DefaultPostsState()
	if _, err := empty.WithSwapped(0, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("WithSwapped on empty list error = %v, want ErrIndexOutOfRange", err)
	}
}
