package persistence

import (
	"context"

	"github.com/eujim/backend/internal/domain/attachment"
	"gorm.io/gorm"
)

// GormTrackingSequence allocates tracking reference numbers from a
// per-year counter row. The upsert increments and returns in a single
// statement, so concurrent submissions never see the same value.
type GormTrackingSequence struct {
	db *gorm.DB
}

// NewGormTrackingSequence creates a new GormTrackingSequence
func NewGormTrackingSequence(db *gorm.DB) *GormTrackingSequence {
	return &GormTrackingSequence{db: db}
}

// Next returns the next sequence value for a year
func (s *GormTrackingSequence) Next(ctx context.Context, year int) (int64, error) {
	var value int64
	err := s.db.WithContext(ctx).Raw(
		`INSERT INTO tracking_sequences (year, last_value) VALUES (?, 1)
		 ON CONFLICT (year) DO UPDATE SET last_value = tracking_sequences.last_value + 1
		 RETURNING last_value`,
		year,
	).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}

// Ensure GormTrackingSequence implements TrackingSequence
var _ attachment.TrackingSequence = (*GormTrackingSequence)(nil)
