package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// AggregateModel extends BaseModel with the optimistic locking version.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// StoreAggregateModel provides the persistence fields of a store-owned aggregate.
type StoreAggregateModel struct {
	AggregateModel
	StoreID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// FromDomainStoreAggregateRoot populates the model from a domain StoreAggregateRoot
func (m *StoreAggregateModel) FromDomainStoreAggregateRoot(a shared.StoreAggregateRoot) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.StoreID = a.StoreID
}

// ToDomainStoreAggregateRoot builds the domain StoreAggregateRoot
func (m *StoreAggregateModel) ToDomainStoreAggregateRoot() shared.StoreAggregateRoot {
	return m.ToStoreAggregateRoot(m.StoreID)
}

// FromDomainAggregateRoot populates the id, timestamps and version
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.ID = a.ID
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
	m.Version = a.Version
}

// ToStoreAggregateRoot builds a domain StoreAggregateRoot owned by storeID
func (m *AggregateModel) ToStoreAggregateRoot(storeID uuid.UUID) shared.StoreAggregateRoot {
	return shared.StoreAggregateRoot{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		StoreID: storeID,
	}
}
