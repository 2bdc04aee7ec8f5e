package inventory

import (
	"context"

	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
)

// TransactionScope runs a unit of work atomically. Implementations retry
// the whole function when it fails with shared.ErrConcurrencyConflict, so
// fn must be safe to run more than once and must only touch state through
// the repositories it is given.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the ledger repositories bound to one
// database transaction.
type TransactionalRepositories interface {
	Locations() inventory.LocationRepository
	Items() inventory.InventoryItemRepository
	Movements() inventory.StockMovementRepository
}
