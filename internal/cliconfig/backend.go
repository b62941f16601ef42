package cliconfig

import (
	"context"
	"fmt"

	"github.com/bft-labs/postboard/internal/adapters/fs"
	"github.com/bft-labs/postboard/internal/adapters/memory"
	"github.com/bft-labs/postboard/internal/adapters/redis"
	"github.com/bft-labs/postboard/internal/adapters/sqlite"
	"github.com/bft-labs/postboard/internal/domain"
	"github.com/bft-labs/postboard/pkg/persist"
)

// OpenStore opens the key-value backend selected by cfg.StateBackend.
// cfg must have been validated. The caller closes the returned store.
func OpenStore(ctx context.Context, cfg Config) (persist.KeyValueStore, error) {
	switch cfg.StateBackend {
	case BackendMemory:
		return memory.NewStore(), nil
	case BackendFile:
		return fs.NewKVFileStore(cfg.StateDir), nil
	case BackendSQLite:
		if err := ensureDir(cfg.SQLitePath); err != nil {
			return nil, err
		}
		kv, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite state: %w", err)
		}
		return kv, nil
	case BackendRedis:
		kv, err := redis.NewKVStore(ctx, cfg.RedisAddr, cfg.RedisPrefix)
		if err != nil {
			return nil, fmt.Errorf("open redis state: %w", err)
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("%w: unknown state backend %q", domain.ErrInvalidConfig, cfg.StateBackend)
	}
}
