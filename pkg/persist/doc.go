// Package persist is the persisted-state helper used by postboard stores.
//
// A [KeyValueStore] is an opaque string-keyed slot store with get/set
// semantics. [Load] and [Save] add typed JSON (de)serialization on top:
//
//	page, ok, err := persist.Load[int](ctx, kv, "currentPage")
//	if err != nil {
//	    return err
//	}
//	if !ok {
//	    page = 1
//	}
//	...
//	if err := persist.Save(ctx, kv, "currentPage", page); err != nil {
//	    return err
//	}
//
// Save followed by Load on the same key returns an equivalent value. There
// is no schema versioning and no migration of stored values.
//
// Backends live in internal/adapters: memory, file, sqlite and redis.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package persist
