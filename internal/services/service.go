package services

import (
	"context"
	"time"

	"github.com/ArowuTest/point-balance-service/internal/models"
)

// PointService defines the interface for point balance operations
type PointService interface {
	// SaveRandom stores a record with a generated id and an initial point of 1
	SaveRandom(ctx context.Context) (*models.PointRecord, error)

	// Save stores a record for id (generated when empty) refreshed now
	Save(ctx context.Context, id string, point int64) (*models.PointRecord, error)

	// Find returns the record for id, found=false when there is none
	Find(ctx context.Context, id string) (*models.PointRecord, bool, error)

	// GetPoint returns the balance for id, or repositories.ErrNotFound
	GetPoint(ctx context.Context, id string) (int64, error)

	// GetRandomPoint looks up a generated id
	GetRandomPoint(ctx context.Context) (id string, point int64, found bool, err error)

	// Refresh replaces the balance of an existing record; a nil refreshTime means now
	Refresh(ctx context.Context, id string, point int64, refreshTime *time.Time) (*models.PointRecord, error)

	// Delete removes the record for id
	Delete(ctx context.Context, id string) error

	// Health checks the backing store
	Health(ctx context.Context) error
}
