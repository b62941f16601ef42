// Package store holds the application state containers.
//
// The posts store keeps the current page and the drag-reordered list of
// posts. Every mutation is written through to a persist.KeyValueStore before
// it becomes visible in memory, so the in-memory values always equal the
// last values written.
//
// Stores are created lazily by a [Registry] and live for the lifetime of
// the application:
//
//	reg := store.DefaultRegistry(kv, logger)
//	posts, err := store.UsePosts(ctx, reg)
//	if err != nil {
//	    return err
//	}
//	_ = posts.PageChange(ctx, 2)
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package store
