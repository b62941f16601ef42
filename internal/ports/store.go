package ports

import (
	"context"

	"github.com/bft-labs/postboard/internal/domain"
	"github.com/bft-labs/postboard/pkg/persist"
)

// KeyValueStore persists raw values under string keys.
type KeyValueStore = persist.KeyValueStore

// PostsPage is one page of the upstream post listing.
type PostsPage struct {
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Total int           `json:"total,omitempty"`
	Posts []domain.Post `json:"posts"`
}

// PostsSource lists posts from the upstream API.
type PostsSource interface {
	FetchPosts(ctx context.Context, page, limit int) (PostsPage, error)
}
