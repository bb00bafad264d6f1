package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseAggregateRoot carries identity, timestamps, the optimistic-lock version
// and the events raised since the last save. An aggregate is new until a
// repository has stored or loaded it.
type BaseAggregateRoot struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int

	persisted    bool
	domainEvents []DomainEvent
}

// NewBaseAggregateRoot creates an unpersisted root at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	now := time.Now()
	return BaseAggregateRoot{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}
}

// Restore sets the stored identity and version on a loaded aggregate
func (a *BaseAggregateRoot) Restore(id uuid.UUID, createdAt, updatedAt time.Time, version int) {
	a.ID = id
	a.CreatedAt = createdAt
	a.UpdatedAt = updatedAt
	a.Version = version
	a.persisted = true
}

// Touch records a mutation
func (a *BaseAggregateRoot) Touch() {
	a.UpdatedAt = time.Now()
	a.Version++
}

// IncrementVersion bumps the version without touching the timestamp
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// IsNew reports whether the aggregate has never been persisted
func (a *BaseAggregateRoot) IsNew() bool {
	return !a.persisted
}

// MarkPersisted is called by repositories after a successful save
func (a *BaseAggregateRoot) MarkPersisted() {
	a.persisted = true
}
