package models

import "time"

// PointRecord is the point balance held for one identifier.
// Point and RefreshTime always change together.
type PointRecord struct {
	ID          string    `bson:"_id" json:"id"`
	Point       int64     `bson:"point" json:"point"`
	RefreshTime time.Time `bson:"refreshTime" json:"refreshTime"`
}

// NewPointRecord creates a PointRecord from all three fields
func NewPointRecord(id string, point int64, refreshTime time.Time) *PointRecord {
	return &PointRecord{
		ID:          id,
		Point:       point,
		RefreshTime: refreshTime,
	}
}

// Refreshed returns a copy of the record holding the new point value and time
func (r PointRecord) Refreshed(point int64, refreshTime time.Time) *PointRecord {
	return NewPointRecord(r.ID, point, refreshTime)
}
