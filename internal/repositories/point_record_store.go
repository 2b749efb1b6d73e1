package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArowuTest/point-balance-service/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// DefaultKeyPrefix namespaces point records inside a shared key-value store
const DefaultKeyPrefix = "availablePoint"

// Compile-time check to ensure PointRecordStore implements the interface
var _ PointRecordRepository = (*PointRecordStore)(nil)

// PointRecordStore persists point records as BSON documents in a KeyValueStore.
// It holds no mutable state; concurrent writers to one id are arbitrated by the
// backend (last write wins).
type PointRecordStore struct {
	kv     KeyValueStore
	prefix string
}

// NewPointRecordStore creates a new PointRecordStore
func NewPointRecordStore(kv KeyValueStore, prefix string) *PointRecordStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &PointRecordStore{
		kv:     kv,
		prefix: prefix,
	}
}

// Key returns the backend key a record id is stored under
func (s *PointRecordStore) Key(id string) string {
	return s.prefix + ":" + id
}

// Save writes the record under its id, replacing any prior value.
// RefreshTime is normalized in place to UTC millisecond precision, the
// precision the encoding keeps.
func (s *PointRecordStore) Save(ctx context.Context, record *models.PointRecord) error {
	if record == nil || record.ID == "" {
		return ErrEmptyID
	}
	record.RefreshTime = normalizeTime(record.RefreshTime)

	data, err := encodeRecord(record)
	if err != nil {
		return err
	}

	return s.kv.Set(ctx, s.Key(record.ID), data)
}

// FindByID loads the record stored for id
func (s *PointRecordStore) FindByID(ctx context.Context, id string) (*models.PointRecord, bool, error) {
	if id == "" {
		return nil, false, ErrEmptyID
	}

	data, err := s.kv.Get(ctx, s.Key(id))
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	record, err := decodeRecord(data)
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", s.Key(id), err)
	}

	return record, true, nil
}

// Refresh replaces point and refreshTime of an existing record with a single write.
// It returns ErrNotFound when there is no record for id.
func (s *PointRecordStore) Refresh(ctx context.Context, id string, point int64, refreshTime time.Time) (*models.PointRecord, error) {
	current, found, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("refresh %s: %w", id, ErrNotFound)
	}

	updated := current.Refreshed(point, refreshTime)
	if err := s.Save(ctx, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes the record for id. Deleting a missing record is not an error.
func (s *PointRecordStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	return s.kv.Delete(ctx, s.Key(id))
}

// Ping checks that the backend is reachable
func (s *PointRecordStore) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func encodeRecord(record *models.PointRecord) ([]byte, error) {
	data, err := bson.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return data, nil
}

func decodeRecord(data []byte) (*models.PointRecord, error) {
	var record models.PointRecord
	if err := bson.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	if record.ID == "" {
		return nil, fmt.Errorf("%w: document has no id", ErrSerialization)
	}
	record.RefreshTime = record.RefreshTime.UTC()
	return &record, nil
}
