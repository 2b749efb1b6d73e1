package bbolt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ArowuTest/point-balance-service/internal/repositories"
	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("points")

// Compile-time check to ensure KVStore implements the interface
var _ repositories.KeyValueStore = (*KVStore)(nil)

// Config locates the database file
type Config struct {
	Path string
	// Timeout bounds the wait for the file lock held by another process
	Timeout time.Duration
}

// KVStore is an embedded single-file key-value store
type KVStore struct {
	db *bolt.DB
}

// New opens (or creates) the database file and its bucket
func New(config Config) (*KVStore, error) {
	db, err := bolt.Open(config.Path, 0600, &bolt.Options{Timeout: config.Timeout})
	if err != nil {
		return nil, fmt.Errorf("could not open bbolt store at %s: %w", config.Path, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not ensure bucket exists: %w", err)
	}

	return &KVStore{db: db}, nil
}

// Get returns a copy of the value stored at key
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, repositories.Unavailable("bbolt get "+key, err)
	}

	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(key))
		if v == nil {
			return repositories.ErrNotFound
		}
		value = append([]byte(nil), v...)
		return nil
	})
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, repositories.Unavailable("bbolt get "+key, err)
	}
	return value, nil
}

// Set stores value at key
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	return s.update(ctx, "bbolt set "+key, func(b *bolt.Bucket) error {
		return b.Put([]byte(key), value)
	})
}

// Delete removes key
func (s *KVStore) Delete(ctx context.Context, key string) error {
	return s.update(ctx, "bbolt delete "+key, func(b *bolt.Bucket) error {
		return b.Delete([]byte(key))
	})
}

// Ping checks that the database is open
func (s *KVStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return repositories.Unavailable("bbolt ping", err)
	}
	if err := s.db.View(func(tx *bolt.Tx) error { return nil }); err != nil {
		return repositories.Unavailable("bbolt ping", err)
	}
	return nil
}

// Close closes the database file
func (s *KVStore) Close() error {
	return s.db.Close()
}

// Remove closes the store and deletes its file
func (s *KVStore) Remove() error {
	path := s.db.Path()

	if err := s.Close(); err != nil {
		return fmt.Errorf("could not close store: %w", err)
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("could not remove path %s: %w", path, err)
	}
	return nil
}

func (s *KVStore) update(ctx context.Context, op string, fn func(b *bolt.Bucket) error) error {
	if err := ctx.Err(); err != nil {
		return repositories.Unavailable(op, err)
	}
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return fn(tx.Bucket(bucketName))
	}); err != nil {
		return repositories.Unavailable(op, err)
	}
	return nil
}
