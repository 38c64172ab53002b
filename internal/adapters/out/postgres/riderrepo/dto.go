// Package riderrepo provides persistence for riders and their dispatch load.
// Riders are registered by the profile surface; this package reads them and
// computes how many active deliveries each one holds.
package riderrepo

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO represents the database structure for riders.
type RiderDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(255);not null"`
	IsActive bool      `gorm:"not null;default:true;index"`
}

// TableName specifies the database table name for rider entities.
func (RiderDTO) TableName() string {
	return "riders"
}

// candidateRow is one row of the availability query.
type candidateRow struct {
	ID           uuid.UUID
	ActiveOrders int
}

func fromDomain(r *rider.Rider) RiderDTO {
	return RiderDTO{
		ID:       r.ID().Bytes(),
		Name:     r.Name(),
		IsActive: r.IsActive(),
	}
}

func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return rider.RestoreRider(id, dto.Name, dto.IsActive)
}

func toCandidate(row candidateRow) (rider.Candidate, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return rider.Candidate{}, err
	}
	return rider.NewCandidate(id, row.ActiveOrders)
}
