// Package redis provides a Redis-backed key-value backend.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/bft-labs/postboard/internal/ports"
)

// DefaultPrefix namespaces postboard keys inside a shared Redis.
const DefaultPrefix = "postboard:"

var _ ports.KeyValueStore = (*KVStore)(nil)

// KVStore implements ports.KeyValueStore with plain GET/SET.
// Values are stored without expiry.
type KVStore struct {
	client *goredis.Client
	prefix string
}

// NewKVStore connects to the Redis server at addr and pings it.
func NewKVStore(ctx context.Context, addr, prefix string) (*KVStore, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return NewKVStoreWithClient(client, prefix), nil
}

// NewKVStoreWithClient wraps an existing client.
func NewKVStoreWithClient(client *goredis.Client, prefix string) *KVStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &KVStore{client: client, prefix: prefix}
}

// Get returns the value stored under key.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set creates or overwrites the value under key.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.redisKey(key), value, 0).Err()
}

// Close closes the client.
func (s *KVStore) Close() error {
	return s.client.Close()
}

func (s *KVStore) redisKey(key string) string {
	return s.prefix + key
}
