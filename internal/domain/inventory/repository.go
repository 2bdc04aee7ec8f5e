package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
)

// LocationRepository defines the interface for location persistence
type LocationRepository interface {
	// FindByID finds a location by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)

	// FindByIDForUpdate finds a location and locks its row until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Location, error)

	// FindByIDForShare finds a location and holds a shared row lock, so the
	// location cannot be deactivated or deleted until the transaction ends
	FindByIDForShare(ctx context.Context, id uuid.UUID) (*Location, error)

	// FindByIDs finds several locations at once
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Location, error)

	// ExistsByCode checks whether a code is taken within a store
	ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error)

	// FindByStore lists a store's locations ordered by is_default desc, name asc
	FindByStore(ctx context.Context, storeID uuid.UUID, activeOnly bool, filter shared.Filter) ([]Location, error)

	// CountByStore counts a store's locations
	CountByStore(ctx context.Context, storeID uuid.UUID, activeOnly bool) (int64, error)

	// FindDefault returns the store's default location
	FindDefault(ctx context.Context, storeID uuid.UUID) (*Location, error)

	// ClearDefault unsets the default flag on every location of the store
	ClearDefault(ctx context.Context, storeID uuid.UUID) error

	// Create inserts a new location
	Create(ctx context.Context, location *Location) error

	// Save updates an existing location with a version check
	Save(ctx context.Context, location *Location) error

	// Delete hard-deletes a location
	Delete(ctx context.Context, id uuid.UUID) error
}

// ItemFilter narrows inventory item queries
type ItemFilter struct {
	StoreID     *uuid.UUID
	LocationID  *uuid.UUID
	Ref         *ProductRef
	StockStatus StockStatus
}

// InventoryItemRepository defines the interface for inventory item persistence
type InventoryItemRepository interface {
	// FindByID finds an inventory item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)

	// FindByKey finds the item of a (location, product ref) pair
	FindByKey(ctx context.Context, locationID uuid.UUID, ref ProductRef) (*InventoryItem, error)

	// FindByKeyForUpdate is FindByKey plus a row lock held until the transaction ends
	FindByKeyForUpdate(ctx context.Context, locationID uuid.UUID, ref ProductRef) (*InventoryItem, error)

	// GetOrCreate returns the existing item or inserts an empty one.
	// Concurrent first calls converge on a single row.
	GetOrCreate(ctx context.Context, storeID, locationID uuid.UUID, ref ProductRef) (*InventoryItem, error)

	// Find lists items matching the filter
	Find(ctx context.Context, itemFilter ItemFilter, filter shared.Filter) ([]InventoryItem, error)

	// Count counts items matching the filter
	Count(ctx context.Context, itemFilter ItemFilter) (int64, error)

	// HasStockAtLocation reports whether any item at the location has quantity or reservations
	HasStockAtLocation(ctx context.Context, locationID uuid.UUID) (bool, error)

	// CountByLocation counts item rows at a location
	CountByLocation(ctx context.Context, locationID uuid.UUID) (int64, error)

	// SaveWithLock writes the item if its version is unchanged and bumps the version
	SaveWithLock(ctx context.Context, item *InventoryItem) error
}

// MovementFilter narrows ledger queries
type MovementFilter struct {
	StoreID         *uuid.UUID
	LocationID      *uuid.UUID
	Ref             *ProductRef
	Type            MovementType
	From            *time.Time
	To              *time.Time
	CorrelationID   *uuid.UUID
	OrderID         *uuid.UUID
	ReferenceNumber string
}

// StockMovementRepository is the append-only ledger store. It has no
// update or delete operations.
type StockMovementRepository interface {
	// Create appends movements
	Create(ctx context.Context, movements ...*StockMovement) error

	// FindByID finds a movement by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockMovement, error)

	// Find lists movements, newest first unless the filter orders otherwise
	Find(ctx context.Context, movementFilter MovementFilter, filter shared.Filter) ([]StockMovement, error)

	// Count counts movements matching the filter
	Count(ctx context.Context, movementFilter MovementFilter) (int64, error)

	// FindByKey returns an item's movements in creation order
	FindByKey(ctx context.Context, locationID uuid.UUID, ref ProductRef) ([]StockMovement, error)

	// CountByLocation counts movements recorded at or targeting a location
	CountByLocation(ctx context.Context, locationID uuid.UUID) (int64, error)
}
