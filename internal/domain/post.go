package domain

import "encoding/json"

// Post is one item of the drag list, kept as the raw JSON it arrived as.
// The store never reads or validates it, so unknown fields and values of
// any shape are written back unchanged.
type Post json.RawMessage

// MarshalJSON returns p as is, or null for an empty post.
func (p Post) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

// UnmarshalJSON stores a copy of data.
func (p *Post) UnmarshalJSON(data []byte) error {
	*p = append(Post(nil), data...)
	return nil
}
