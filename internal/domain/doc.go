// Package domain contains the core entities of postboard.
//
// This package has no dependencies on infrastructure concerns (storage,
// HTTP, logging). Store state changes are expressed as pure transitions on
// [PostsState]; persisting the result is the caller's job.
//
// # Entities
//
//   - [Post]: one opaque item of the drag list
//   - [PostsState]: the posts store state (current page, drag list)
package domain
