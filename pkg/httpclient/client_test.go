package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/bft-labs/postboard/internal/domain"
)

func TestClient_FetchPosts(t *testing.T) {
	var gotQuery, gotRequestID, gotInstance, gotAuth string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posts" {
			t.Errorf("path = %s, want /posts", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		gotRequestID = r.Header.Get("X-Request-Id")
		gotInstance = r.Header.Get("X-Postboard-Instance")
		gotAuth = r.Header.Get("Authorization")

		w.Header().Set("X-Total-Count", "100")
		_, _ = w.Write([]byte(`[{"id":11,"userId":2,"title":"eleven"},{"id":12,"userId":2,"title":"twelve"}]`))
	}))
	defer ts.Close()

	c := New(Config{
		BaseURL: ts.URL + "/",
		Timeout: 5 * time.Second,
		Headers: map[string]string{"Authorization": "Bearer t"},
	}, WithInstanceID("app-1"))

	page, err := c.FetchPosts(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("FetchPosts: %v", err)
	}

	if gotQuery != "_limit=10&_page=2" {
		t.Errorf("query = %s", gotQuery)
	}
	if gotRequestID == "" {
		t.Error("missing X-Request-Id")
	}
	if gotInstance != "app-1" {
		t.Errorf("X-Postboard-Instance = %q, want app-1", gotInstance)
	}
	if gotAuth != "Bearer t" {
		t.Errorf("Authorization = %q", gotAuth)
	}

	want := []domain.Post{
		domain.Post(`{"id":11,"userId":2,"title":"eleven"}`),
		domain.Post(`{"id":12,"userId":2,"title":"twelve"}`),
	}
	if diff := cmp.Diff(want, page.Posts); diff != "" {
		t.Errorf("posts (-want +got):\n%s", diff)
	}
	if page.Page != 2 || page.Limit != 10 || page.Total != 100 {
		t.Errorf("page = %+v", page)
	}
}

func TestClient_FetchPosts_Defaults(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte("[]"))
	}))
	defer ts.Close()

	c := New(Config{BaseURL: ts.URL})
	page, err := c.FetchPosts(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("FetchPosts: %v", err)
	}
	if gotQuery != "_limit=10&_page=1" {
		t.Errorf("query = %s", gotQuery)
	}
	if page.Posts == nil || len(page.Posts) != 0 || page.Total != 0 {
		t.Errorf("page = %+v", page)
	}
}

func TestClient_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := New(Config{BaseURL: ts.URL})
	_, err := c.FetchPosts(context.Background(), 1, 5)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusServiceUnavailable {
		t.Errorf("Code = %d", statusErr.Code)
	}
}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{})
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL = %s, want %s", c.BaseURL(), DefaultBaseURL)
	}
	hc, ok := c.http.(*http.Client)
	if !ok || hc.Timeout != 15*time.Second {
		t.Errorf("transport = %#v, want *http.Client with 15s timeout", c.http)
	}
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"userId":1,"title":"t","body":"b"}]`))
	}))
	defer ts.Close()

	c := New(Config{BaseURL: ts.URL, Retries: 2, RetryBackoff: time.Millisecond})
	page, err := c.FetchPosts(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("FetchPosts() error = %v", err)
	}
	if len(page.Posts) != 1 {
		t.Errorf("got %d posts, want 1", len(page.Posts))
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server saw %d calls, want 3", got)
	}
}

func TestClient_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer ts.Close()

	c := New(Config{BaseURL: ts.URL, Retries: 3, RetryBackoff: time.Millisecond})
	if _, err := c.FetchPosts(context.Background(), 1, 5); err == nil {
		t.Fatal("FetchPosts() succeeded, want error")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server saw %d calls, want 1", got)
	}
}

func TestClient_RetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer ts.Close()

	c := New(Config{BaseURL: ts.URL, Retries: 2, RetryBackoff: time.Millisecond})
	_, err := c.FetchPosts(context.Background(), 1, 5)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusBadGateway {
		t.Fatalf("error = %v, want 502 StatusError", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server saw %d calls, want 3", got)
	}
}
