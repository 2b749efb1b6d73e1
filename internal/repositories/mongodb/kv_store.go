package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArowuTest/point-balance-service/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultCollection holds one document per key
const DefaultCollection = "available_points"

// Compile-time check to ensure KVStore implements the interface
var _ repositories.KeyValueStore = (*KVStore)(nil)

type entry struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// KVStore keeps values as binary fields of documents keyed by _id
type KVStore struct {
	collection *mongo.Collection
}

// NewKVStore creates a new KVStore
func NewKVStore(db *mongo.Database, collection string) *KVStore {
	if collection == "" {
		collection = DefaultCollection
	}
	return &KVStore{
		collection: db.Collection(collection),
	}
}

// Get returns the value stored at key
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var e entry
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		if isDecodeError(err) {
			return nil, fmt.Errorf("mongodb get %s: %w: %w", key, repositories.ErrSerialization, err)
		}
		return nil, repositories.Unavailable("mongodb get "+key, err)
	}
	return e.Value, nil
}

// Set replaces the document for key, creating it when missing
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	doc := entry{Key: key, Value: value, UpdatedAt: time.Now()}
	opts := options.Replace().SetUpsert(true)

	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, opts); err != nil {
		return repositories.Unavailable("mongodb set "+key, err)
	}
	return nil
}

// Delete removes the document for key
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return repositories.Unavailable("mongodb delete "+key, err)
	}
	return nil
}

// Ping checks the connection to the primary
func (s *KVStore) Ping(ctx context.Context) error {
	if err := s.collection.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return repositories.Unavailable("mongodb ping", err)
	}
	return nil
}

// Close disconnects the underlying client and its pool
func (s *KVStore) Close() error {
	return s.collection.Database().Client().Disconnect(context.Background())
}

func isDecodeError(err error) bool {
	var decodeErr *bsoncodec.DecodeError
	return errors.As(err, &decodeErr)
}
