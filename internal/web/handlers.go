package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/bft-labs/postboard/internal/domain"
	"github.com/bft-labs/postboard/internal/ports"
	"github.com/bft-labs/postboard/pkg/store"
)

// maxPageSize bounds the limit query parameter of /api/posts.
const maxPageSize = 100

type handlers struct {
	posts  *store.PostsStore
	source ports.PostsSource
	logger ports.Logger
}

type pageRequest struct {
	Page *int `json:"page"`
}

type reorderRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	_ = RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) getState(w http.ResponseWriter, r *http.Request) {
	_ = RespondJSON(w, http.StatusOK, h.posts.State())
}

func (h *handlers) putPage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, err.Error())
		return
	}
	if req.Page == nil {
		badRequest(w, "page is required")
		return
	}

	if err := h.posts.PageChange(r.Context(), *req.Page); err != nil {
		h.storeError(w, err)
		return
	}
	_ = RespondJSON(w, http.StatusOK, h.posts.State())
}

func getParam(r *http.Request, key string, defaultValue int) (int, error) {
	param := r.URL.Query().Get(key)
	if param == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(param)
}

func (h *handlers) getPosts(w http.ResponseWriter, r *http.Request) {
	current := h.posts.CurrentPage()
	if current < 1 {
		current = domain.DefaultPage
	}
	page, err := getParam(r, "page", current)
	if err != nil || page < 1 {
		badRequest(w, "invalid page")
		return
	}
	limit, err := getParam(r, "limit", 10)
	if err != nil || limit < 1 || limit > maxPageSize {
		badRequest(w, "invalid limit")
		return
	}

	postsPage, err := h.source.FetchPosts(r.Context(), page, limit)
	if err != nil {
		h.logger.Error("fetch posts", ports.Int("page", page), ports.Err(err))
		badGateway(w, err.Error())
		return
	}
	_ = RespondJSON(w, http.StatusOK, postsPage)
}

func (h *handlers) appendDragList(w http.ResponseWriter, r *http.Request) {
	var post domain.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := h.posts.SetDragList(r.Context(), post); err != nil {
		h.storeError(w, err)
		return
	}
	_ = RespondJSON(w, http.StatusOK, h.posts.State())
}

func (h *handlers) swapDragList(w http.ResponseWriter, r *http.Request) {
	from, to, ok := decodeReorder(w, r)
	if !ok {
		return
	}
	if err := h.posts.ChangeDragList(r.Context(), from, to); err != nil {
		h.storeError(w, err)
		return
	}
	_ = RespondJSON(w, http.StatusOK, h.posts.State())
}

func (h *handlers) moveDragList(w http.ResponseWriter, r *http.Request) {
	from, to, ok := decodeReorder(w, r)
	if !ok {
		return
	}
	if err := h.posts.MoveDragList(r.Context(), from, to); err != nil {
		h.storeError(w, err)
		return
	}
	_ = RespondJSON(w, http.StatusOK, h.posts.State())
}

func decodeReorder(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, err.Error())
		return 0, 0, false
	}
	if req.From == nil || req.To == nil {
		badRequest(w, "from and to are required")
		return 0, 0, false
	}
	return *req.From, *req.To, true
}

// storeError maps a store failure to a response. Bad indices are the
// caller's fault; anything else is a storage failure.
func (h *handlers) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrIndexOutOfRange) {
		badRequest(w, err.Error())
		return
	}
	h.logger.Error("store operation failed", ports.Err(err))
	internalError(w, err.Error())
}
