package httpclient

import (
	"context"
	"net/url"
	"strconv"

	"github.com/bft-labs/postboard/internal/domain"
	"github.com/bft-labs/postboard/internal/ports"
)

var _ ports.PostsSource = (*Client)(nil)

// DefaultPageSize is used when FetchPosts is called with a non-positive limit.
const DefaultPageSize = 10

// FetchPosts lists one page of posts using the _page/_limit query
// convention. Total is taken from X-Total-Count when the server sends it.
func (c *Client) FetchPosts(ctx context.Context, page, limit int) (ports.PostsPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}

	query := url.Values{}
	query.Set("_page", strconv.Itoa(page))
	query.Set("_limit", strconv.Itoa(limit))

	posts := make([]domain.Post, 0, limit)
	header, err := c.GetJSON(ctx, postsEndpoint, query, &posts)
	if err != nil {
		return ports.PostsPage{}, err
	}

	result := ports.PostsPage{Page: page, Limit: limit, Posts: posts}
	if total, err := strconv.Atoi(header.Get("X-Total-Count")); err == nil {
		result.Total = total
	}
	return result, nil
}
