package models

import (
	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
)

// LocationModel is the persistence model for the Location aggregate root.
// At most one default location per store is enforced by a partial unique index.
type LocationModel struct {
	AggregateModel
	StoreID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_locations_store_code,priority:1;uniqueIndex:idx_inventory_locations_store_default,where:is_default"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Code      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_inventory_locations_store_code,priority:2"`
	Address   string    `gorm:"type:varchar(500)"`
	Latitude  *float64  `gorm:"type:decimal(10,7)"`
	Longitude *float64  `gorm:"type:decimal(10,7)"`
	IsActive  bool      `gorm:"not null;index"`
	IsDefault bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (LocationModel) TableName() string {
	return "inventory_locations"
}

// ToDomain converts the persistence model to a domain Location
func (m *LocationModel) ToDomain() *inventory.Location {
	loc := &inventory.Location{
		StoreAggregateRoot: m.ToStoreAggregateRoot(m.StoreID),
		Name:               m.Name,
		Code:               m.Code,
		Address:            m.Address,
		IsActive:           m.IsActive,
		IsDefault:          m.IsDefault,
	}
	if m.Latitude != nil && m.Longitude != nil {
		loc.Coordinates = &inventory.Coordinates{Latitude: *m.Latitude, Longitude: *m.Longitude}
	}
	return loc
}

// FromDomain populates the persistence model from a domain Location
func (m *LocationModel) FromDomain(l *inventory.Location) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.StoreID = l.StoreID
	m.Name = l.Name
	m.Code = l.Code
	m.Address = l.Address
	m.IsActive = l.IsActive
	m.IsDefault = l.IsDefault
	m.Latitude, m.Longitude = nil, nil
	if l.Coordinates != nil {
		lat, lng := l.Coordinates.Latitude, l.Coordinates.Longitude
		m.Latitude, m.Longitude = &lat, &lng
	}
}

// LocationModelFromDomain creates a new persistence model from a domain Location
func LocationModelFromDomain(l *inventory.Location) *LocationModel {
	m := &LocationModel{}
	m.FromDomain(l)
	return m
}
