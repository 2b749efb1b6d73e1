package redis

import (
	"context"
	"errors"

	"github.com/ArowuTest/point-balance-service/internal/repositories"
	goredis "github.com/redis/go-redis/v9"
)

// Compile-time check to ensure KVStore implements the interface
var _ repositories.KeyValueStore = (*KVStore)(nil)

// KVStore stores values as redis strings. Every call borrows one pooled
// connection from the client and returns it when the command completes.
type KVStore struct {
	client goredis.UniversalClient
}

// NewKVStore creates a new KVStore on top of an already configured client
func NewKVStore(client goredis.UniversalClient) *KVStore {
	return &KVStore{
		client: client,
	}
}

// Get returns the value stored at key
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, repositories.Unavailable("redis get "+key, err)
	}
	return value, nil
}

// Set stores value at key without expiry
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return repositories.Unavailable("redis set "+key, err)
	}
	return nil
}

// Delete removes key
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return repositories.Unavailable("redis del "+key, err)
	}
	return nil
}

// Ping checks the connection to the server
func (s *KVStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return repositories.Unavailable("redis ping", err)
	}
	return nil
}

// Close releases every pooled connection
func (s *KVStore) Close() error {
	return s.client.Close()
}
