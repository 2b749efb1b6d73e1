package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ArowuTest/point-balance-service/internal/repositories"
	"github.com/ArowuTest/point-balance-service/internal/repositories/kvtest"
	"github.com/ArowuTest/point-balance-service/internal/repositories/redis"
	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestTarget(t *testing.T) repositories.KeyValueStore {
	server := miniredis.RunT(t)
	store := redis.NewKVStore(goredis.NewClient(&goredis.Options{Addr: server.Addr()}))
	t.Cleanup(func() { store.Close() })
	return store
}

func TestKVStore(t *testing.T) {
	kvtest.Run(t, newTestTarget)
}

func TestKVStoreUnavailable(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	store := redis.NewKVStore(goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 200 * time.Millisecond,
		PoolTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	}))
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := store.Get(ctx, "key"); !errors.Is(err, repositories.ErrStoreUnavailable) {
		t.Errorf("Get error = %v, want ErrStoreUnavailable", err)
	}
	if err := store.Set(ctx, "key", []byte("value")); !errors.Is(err, repositories.ErrStoreUnavailable) {
		t.Errorf("Set error = %v, want ErrStoreUnavailable", err)
	}
	if err := store.Delete(ctx, "key"); !errors.Is(err, repositories.ErrStoreUnavailable) {
		t.Errorf("Delete error = %v, want ErrStoreUnavailable", err)
	}
	if err := store.Ping(ctx); !errors.Is(err, repositories.ErrStoreUnavailable) {
		t.Errorf("Ping error = %v, want ErrStoreUnavailable", err)
	}
}
