package inventory

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// ItemStore is the materialized view of current stock per (location,
// product ref). Quantity and reservation writes only happen inside a
// transaction opened by the ledger or the reservation manager.
type ItemStore struct {
	locationRepo   inventory.LocationRepository
	itemRepo       inventory.InventoryItemRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewItemStore creates a new ItemStore
func NewItemStore(
	locationRepo inventory.LocationRepository,
	itemRepo inventory.InventoryItemRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *ItemStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemStore{
		locationRepo: locationRepo,
		itemRepo:     itemRepo,
		txScope:      txScope,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ItemStore) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetOrCreateItem returns the item of the pair, creating an empty one if
// needed. Calling it twice, even concurrently, yields the same row.
func (s *ItemStore) GetOrCreateItem(ctx context.Context, locationID uuid.UUID, ref inventory.ProductRef) (*ItemResponse, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	loc, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	item, err := s.itemRepo.GetOrCreate(ctx, loc.StoreID, loc.ID, ref)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// GetByID retrieves an item
func (s *ItemStore) GetByID(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// GetByKey retrieves the item of a (location, product ref) pair
func (s *ItemStore) GetByKey(ctx context.Context, locationID uuid.UUID, ref inventory.ProductRef) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByKey(ctx, locationID, ref)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// List returns items filtered by store, location, product ref and stock status
func (s *ItemStore) List(ctx context.Context, filter ItemListFilter) (shared.Paginated[ItemResponse], error) {
	page, pageSize := normalizePage(filter.Page, filter.PageSize)

	itemFilter := inventory.ItemFilter{
		StoreID:    filter.StoreID,
		LocationID: filter.LocationID,
	}
	if filter.ProductID != nil || filter.VariantID != nil {
		ref, err := inventory.NewProductRef(filter.ProductID, filter.VariantID)
		if err != nil {
			return shared.Paginated[ItemResponse]{}, err
		}
		itemFilter.Ref = &ref
	}
	if filter.StockStatus != "" {
		status := inventory.StockStatus(filter.StockStatus)
		if !status.IsValid() {
			return shared.Paginated[ItemResponse]{}, shared.ErrInvalidInput.WithMessage("Unknown stock status %q", filter.StockStatus)
		}
		itemFilter.StockStatus = status
	}

	items, err := s.itemRepo.Find(ctx, itemFilter, shared.Filter{Page: page, PageSize: pageSize})
	if err != nil {
		return shared.Paginated[ItemResponse]{}, err
	}
	total, err := s.itemRepo.Count(ctx, itemFilter)
	if err != nil {
		return shared.Paginated[ItemResponse]{}, err
	}

	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	return shared.NewPaginated(responses, total, page, pageSize), nil
}

// SetThresholds updates the replenishment configuration. It never changes
// quantities. The item is created if the pair has no row yet.
func (s *ItemStore) SetThresholds(ctx context.Context, req SetThresholdsRequest) (*ItemResponse, error) {
	if err := req.Ref.Validate(); err != nil {
		return nil, err
	}

	var (
		buf    eventBuffer
		result *inventory.InventoryItem
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		buf.reset()
		loc, err := repos.Locations().FindByIDForShare(ctx, req.LocationID)
		if err != nil {
			return err
		}
		item, err := lockItem(ctx, repos, loc.StoreID, loc.ID, req.Ref)
		if err != nil {
			return err
		}
		if err := item.SetThresholds(req.MinStockLevel, req.MaxStockLevel, req.ReorderPoint); err != nil {
			return err
		}
		if err := repos.Items().SaveWithLock(ctx, item); err != nil {
			return err
		}
		buf.collect(item)
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, s.logger, &buf)
	resp := ToItemResponse(result)
	return &resp, nil
}

// ApplyQuantityDelta adds delta to the quantity of a locked item and
// persists it. It must run inside the caller's transaction.
func (s *ItemStore) ApplyQuantityDelta(ctx context.Context, repos TransactionalRepositories, item *inventory.InventoryItem, delta int64) error {
	if err := item.ApplyQuantityDelta(delta); err != nil {
		return err
	}
	return repos.Items().SaveWithLock(ctx, item)
}

// AdjustReservation adds delta to the reserved quantity of a locked item
// and persists it. It must run inside the caller's transaction.
func (s *ItemStore) AdjustReservation(ctx context.Context, repos TransactionalRepositories, item *inventory.InventoryItem, delta int64) error {
	if err := item.AdjustReservation(delta); err != nil {
		return err
	}
	return repos.Items().SaveWithLock(ctx, item)
}

// activeLocation loads a location for the rest of the transaction. The
// location must be active and, when storeID is set, belong to that store.
func activeLocation(ctx context.Context, repos TransactionalRepositories, storeID, locationID uuid.UUID) (*inventory.Location, error) {
	loc, err := repos.Locations().FindByIDForShare(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if storeID != uuid.Nil && loc.StoreID != storeID {
		return nil, shared.ErrNotFound.WithMessage("Location %s not found in store %s", locationID, storeID)
	}
	if !loc.IsActive {
		return nil, inventory.ErrLocationInactive.WithMessage("Location %s is not active", loc.Code)
	}
	return loc, nil
}

// lockItem returns the item of the pair, creating it if needed, with its
// row locked until the transaction ends.
func lockItem(ctx context.Context, repos TransactionalRepositories, storeID, locationID uuid.UUID, ref inventory.ProductRef) (*inventory.InventoryItem, error) {
	item, err := repos.Items().FindByKeyForUpdate(ctx, locationID, ref)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if _, err := repos.Items().GetOrCreate(ctx, storeID, locationID, ref); err != nil {
		return nil, err
	}
	return repos.Items().FindByKeyForUpdate(ctx, locationID, ref)
}

// lockKey identifies one item row to lock
type lockKey struct {
	storeID    uuid.UUID
	locationID uuid.UUID
	ref        inventory.ProductRef
}

// lockItemsOrdered locks several item rows in ascending location id order
// so that two transactions touching the same pair of rows always acquire
// them in the same order. The result is indexed like keys.
func lockItemsOrdered(ctx context.Context, repos TransactionalRepositories, keys ...lockKey) ([]*inventory.InventoryItem, error) {
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return keys[order[a]].locationID.String() < keys[order[b]].locationID.String()
	})

	items := make([]*inventory.InventoryItem, len(keys))
	for _, idx := range order {
		k := keys[idx]
		item, err := lockItem(ctx, repos, k.storeID, k.locationID, k.ref)
		if err != nil {
			return nil, err
		}
		items[idx] = item
	}
	return items, nil
}
