package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/surgishop/backend/internal/domain/shared"
)

// AggregateModel holds the columns every aggregate table shares
type AggregateModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Version   int       `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot copies identity and version from the aggregate
func (m *AggregateModel) FromDomainAggregateRoot(a *shared.BaseAggregateRoot) {
	m.ID = a.ID
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
	m.Version = a.Version
}

// PopulateAggregateRoot restores identity and version onto a loaded aggregate
func (m *AggregateModel) PopulateAggregateRoot(a *shared.BaseAggregateRoot) {
	a.Restore(m.ID, m.CreatedAt, m.UpdatedAt, m.Version)
}
