// Package kvtest holds the behaviour every KeyValueStore backend must share.
package kvtest

import (
	"context"
	"errors"
	"testing"

	"github.com/ArowuTest/point-balance-service/internal/repositories"
)

// Factory returns a fresh, empty store. Cleanup is registered on t.
type Factory func(t *testing.T) repositories.KeyValueStore

// Run exercises a KeyValueStore implementation
func Run(t *testing.T, newStore Factory) {
	t.Run("Set", func(t *testing.T) { testSet(t, newStore(t)) })
	t.Run("Get", func(t *testing.T) { testGet(t, newStore(t)) })
	t.Run("SetOverwrite", func(t *testing.T) { testSetOverwrite(t, newStore(t)) })
	t.Run("GetNotFound", func(t *testing.T) { testGetNotFound(t, newStore(t)) })
	t.Run("Delete", func(t *testing.T) { testDelete(t, newStore(t)) })
	t.Run("Ping", func(t *testing.T) { testPing(t, newStore(t)) })
}

func testSet(t *testing.T, target repositories.KeyValueStore) {
	if err := target.Set(context.Background(), "key", []byte("value")); err != nil {
		t.Fatalf("Set fail %v", err)
	}
}

func testGet(t *testing.T, target repositories.KeyValueStore) {
	ctx := context.Background()
	value := []byte("value")
	if err := target.Set(ctx, "key", value); err != nil {
		t.Fatalf("Set fail %v", err)
	}

	v, err := target.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get fail %v", err)
	}
	if string(v) != string(value) {
		t.Fatalf("Get gave wrong content: %q != %q", v, value)
	}
}

func testSetOverwrite(t *testing.T, target repositories.KeyValueStore) {
	ctx := context.Background()
	if err := target.Set(ctx, "key", []byte("value")); err != nil {
		t.Fatalf("Set fail %v", err)
	}
	if err := target.Set(ctx, "key", []byte("otherValue")); err != nil {
		t.Fatalf("Set fail %v", err)
	}

	v, err := target.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get fail %v", err)
	}
	if string(v) != "otherValue" {
		t.Fatalf("Get gave wrong content: %q != %q", v, "otherValue")
	}
}

func testGetNotFound(t *testing.T, target repositories.KeyValueStore) {
	_, err := target.Get(context.Background(), "this is a wrong key")
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("Get error = %v, want ErrNotFound", err)
	}
	if errors.Is(err, repositories.ErrStoreUnavailable) {
		t.Fatalf("a missing key must not be reported as unavailable: %v", err)
	}
}

func testDelete(t *testing.T, target repositories.KeyValueStore) {
	ctx := context.Background()
	if err := target.Set(ctx, "key", []byte("value")); err != nil {
		t.Fatalf("Set fail %v", err)
	}
	if err := target.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete fail %v", err)
	}
	if _, err := target.Get(ctx, "key"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("Get after Delete error = %v, want ErrNotFound", err)
	}
	if err := target.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete of a missing key fail %v", err)
	}
}

func testPing(t *testing.T, target repositories.KeyValueStore) {
	if err := target.Ping(context.Background()); err != nil {
		t.Fatalf("Ping fail %v", err)
	}
}
