// Package sequencerepo hands out per-day order sequence numbers.
package sequencerepo

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// SequenceDTO is the counter row of one UTC day.
type SequenceDTO struct {
	Day       time.Time `gorm:"type:date;primaryKey"`
	LastValue int64     `gorm:"not null"`
}

// TableName specifies the database table name for order sequences.
func (SequenceDTO) TableName() string {
	return "order_sequences"
}

// GormOrderSequence implements ports.OrderSequence with an atomic upsert, so
// concurrent placements on the same day never read the same value.
type GormOrderSequence struct {
	db *gorm.DB
}

func NewGormOrderSequence(db *gorm.DB) *GormOrderSequence {
	return &GormOrderSequence{db: db}
}

// Next increments and returns the counter for day's UTC date, starting at 1.
func (s *GormOrderSequence) Next(ctx context.Context, day time.Time) (int64, error) {
	var next int64
	err := s.db.WithContext(ctx).Raw(`
		INSERT INTO order_sequences (day, last_value)
		VALUES (?, 1)
		ON CONFLICT (day) DO UPDATE SET last_value = order_sequences.last_value + 1
		RETURNING last_value
	`, day.UTC().Format(time.DateOnly)).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}
