package mongodb_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/ArowuTest/point-balance-service/internal/repositories"
	"github.com/ArowuTest/point-balance-service/internal/repositories/kvtest"
	mongorepo "github.com/ArowuTest/point-balance-service/internal/repositories/mongodb"
	"github.com/ArowuTest/point-balance-service/pkg/mongodb"
	"github.com/google/uuid"
)

// These tests need a running server, e.g. MONGODB_TEST_URI=mongodb://localhost:27017
func newTestTarget(t *testing.T) repositories.KeyValueStore {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongodb.NewClient(ctx, mongodb.Options{URI: uri, MaxPoolSize: 4, ConnectTimeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("mongodb.NewClient fail %v", err)
	}

	db := client.Database("point_balance_test")
	collection := fmt.Sprintf("points_%s", uuid.NewString())
	store := mongorepo.NewKVStore(db, collection)
	t.Cleanup(func() {
		_ = db.Collection(collection).Drop(context.Background())
		_ = store.Close()
	})
	return store
}

func TestKVStore(t *testing.T) {
	kvtest.Run(t, newTestTarget)
}
