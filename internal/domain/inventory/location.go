package inventory

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
)

// Coordinates is an optional geographic position of a location.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Validate checks latitude/longitude ranges
func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180 {
		return ErrInvalidLocation.WithMessage("Coordinates are out of range")
	}
	return nil
}

// Location is a physical or virtual place where a store keeps stock.
// Codes are unique per store and stored upper case.
type Location struct {
	shared.StoreAggregateRoot
	Name        string
	Code        string
	Address     string
	Coordinates *Coordinates
	IsActive    bool
	IsDefault   bool
}

// NewLocation creates an active, non-default location
func NewLocation(storeID uuid.UUID, name, code, address string, coords *Coordinates) (*Location, error) {
	if storeID == uuid.Nil {
		return nil, ErrInvalidLocation.WithMessage("Store ID cannot be empty")
	}
	if err := validateLocationName(name); err != nil {
		return nil, err
	}
	normalized, err := NormalizeLocationCode(code)
	if err != nil {
		return nil, err
	}
	if coords != nil {
		if err := coords.Validate(); err != nil {
			return nil, err
		}
	}

	loc := &Location{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Name:               strings.TrimSpace(name),
		Code:               normalized,
		Address:            strings.TrimSpace(address),
		Coordinates:        coords,
		IsActive:           true,
	}
	loc.AddDomainEvent(NewLocationCreatedEvent(loc))
	return loc, nil
}

// NormalizeLocationCode trims and upper-cases a code and checks its shape.
func NormalizeLocationCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", ErrInvalidLocation.WithMessage("Location code cannot be empty")
	}
	if len(code) > 50 {
		return "", ErrInvalidLocation.WithMessage("Location code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') && r != '-' && r != '_' {
			return "", ErrInvalidLocation.WithMessage("Location code may only contain letters, digits, '-' and '_'")
		}
	}
	return code, nil
}

func validateLocationName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidLocation.WithMessage("Location name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 200 {
		return ErrInvalidLocation.WithMessage("Location name cannot exceed 200 characters")
	}
	return nil
}

// Update changes the descriptive attributes. The code never changes.
func (l *Location) Update(name, address string, coords *Coordinates) error {
	if err := validateLocationName(name); err != nil {
		return err
	}
	if coords != nil {
		if err := coords.Validate(); err != nil {
			return err
		}
	}
	l.Name = strings.TrimSpace(name)
	l.Address = strings.TrimSpace(address)
	l.Coordinates = coords
	l.Touch()
	return nil
}

// MarkDefault makes this location the store default. The caller is
// responsible for clearing the previous default in the same transaction.
func (l *Location) MarkDefault() error {
	if !l.IsActive {
		return ErrDefaultLocationInactive
	}
	if l.IsDefault {
		return nil
	}
	l.IsDefault = true
	l.Touch()
	l.AddDomainEvent(NewDefaultLocationChangedEvent(l))
	return nil
}

// Deactivate soft-disables the location. Whether the location still holds
// stock is checked by the caller, which can see the item store.
func (l *Location) Deactivate() {
	if !l.IsActive {
		return
	}
	l.IsActive = false
	l.IsDefault = false
	l.Touch()
	l.AddDomainEvent(NewLocationDeactivatedEvent(l))
}

// Activate re-enables a deactivated location
func (l *Location) Activate() {
	if l.IsActive {
		return
	}
	l.IsActive = true
	l.Touch()
	l.AddDomainEvent(NewLocationActivatedEvent(l))
}
