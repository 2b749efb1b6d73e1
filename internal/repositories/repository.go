package repositories

import (
	"context"
	"time"

	"github.com/ArowuTest/point-balance-service/internal/models"
)

// PointRecordRepository defines the interface for point record operations
type PointRecordRepository interface {
	Save(ctx context.Context, record *models.PointRecord) error
	// FindByID reports found=false with a nil error when no record exists.
	FindByID(ctx context.Context, id string) (*models.PointRecord, bool, error)
	Refresh(ctx context.Context, id string, point int64, refreshTime time.Time) (*models.PointRecord, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// KeyValueStore is a pooled byte-oriented key-value backend.
// Get returns ErrNotFound for a missing key; connectivity failures wrap ErrStoreUnavailable.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
