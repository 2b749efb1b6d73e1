package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ArowuTest/point-balance-service/internal/logger"
	"github.com/ArowuTest/point-balance-service/internal/models"
	"github.com/ArowuTest/point-balance-service/internal/repositories"
	"github.com/ArowuTest/point-balance-service/internal/utils"
	"go.uber.org/zap"
)

// InitialPoint is the balance of records created by SaveRandom
const InitialPoint int64 = 1

// Compile-time check to ensure PointServiceImpl implements the interface
var _ PointService = (*PointServiceImpl)(nil)

// PointServiceImpl implements PointService
type PointServiceImpl struct {
	pointRepo repositories.PointRecordRepository
	ids       utils.IDGenerator
	logger    *zap.Logger
	now       func() time.Time
}

// NewPointService creates a new PointService
func NewPointService(pointRepo repositories.PointRecordRepository, ids utils.IDGenerator, logger *zap.Logger) *PointServiceImpl {
	return &PointServiceImpl{
		pointRepo: pointRepo,
		ids:       ids,
		logger:    logger,
		now:       time.Now,
	}
}

// SaveRandom stores a record with a generated id
func (s *PointServiceImpl) SaveRandom(ctx context.Context) (*models.PointRecord, error) {
	return s.Save(ctx, "", InitialPoint)
}

// Save stores a record for id, generating one when id is empty
func (s *PointServiceImpl) Save(ctx context.Context, id string, point int64) (*models.PointRecord, error) {
	if id == "" {
		var err error
		if id, err = s.ids.NewID(); err != nil {
			return nil, fmt.Errorf("generate id: %w", err)
		}
	}

	record := models.NewPointRecord(id, point, s.now())
	if err := s.pointRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.log(ctx).Info("saved point record",
		zap.String("id", record.ID),
		zap.Int64("point", record.Point),
		zap.Time("refreshTime", record.RefreshTime))

	return record, nil
}

// Find returns the record for id
func (s *PointServiceImpl) Find(ctx context.Context, id string) (*models.PointRecord, bool, error) {
	return s.pointRepo.FindByID(ctx, id)
}

// GetPoint returns the balance for id
func (s *PointServiceImpl) GetPoint(ctx context.Context, id string) (int64, error) {
	record, found, err := s.pointRepo.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("point %s: %w", id, repositories.ErrNotFound)
	}
	return record.Point, nil
}

// GetRandomPoint looks up a freshly generated id. A missing record yields
// found=false and a zero point; store failures are returned as errors.
func (s *PointServiceImpl) GetRandomPoint(ctx context.Context) (string, int64, bool, error) {
	id, err := s.ids.NewID()
	if err != nil {
		return "", 0, false, fmt.Errorf("generate id: %w", err)
	}

	record, found, err := s.pointRepo.FindByID(ctx, id)
	if err != nil || !found {
		return id, 0, false, err
	}
	return id, record.Point, true, nil
}

// Refresh replaces the balance of an existing record
func (s *PointServiceImpl) Refresh(ctx context.Context, id string, point int64, refreshTime *time.Time) (*models.PointRecord, error) {
	at := s.now()
	if refreshTime != nil {
		at = *refreshTime
	}

	record, err := s.pointRepo.Refresh(ctx, id, point, at)
	if err != nil {
		return nil, err
	}

	s.log(ctx).Info("refreshed point record",
		zap.String("id", record.ID),
		zap.Int64("point", record.Point),
		zap.Time("refreshTime", record.RefreshTime))

	return record, nil
}

// Delete removes the record for id
func (s *PointServiceImpl) Delete(ctx context.Context, id string) error {
	return s.pointRepo.Delete(ctx, id)
}

// Health checks the backing store
func (s *PointServiceImpl) Health(ctx context.Context) error {
	return s.pointRepo.Ping(ctx)
}

func (s *PointServiceImpl) log(ctx context.Context) *zap.Logger {
	return logger.FromContext(ctx, s.logger)
}
