package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// LocationService manages the stock locations of a store
type LocationService struct {
	locationRepo   inventory.LocationRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewLocationService creates a new LocationService
func NewLocationService(locationRepo inventory.LocationRepository, txScope TransactionScope, logger *zap.Logger) *LocationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocationService{
		locationRepo: locationRepo,
		txScope:      txScope,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *LocationService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create registers a location. When IsDefault is set the previous default
// of the store is cleared in the same transaction.
func (s *LocationService) Create(ctx context.Context, req CreateLocationRequest) (*LocationResponse, error) {
	coords, err := coordinatesFrom(req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	var (
		buf      eventBuffer
		location *inventory.Location
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		buf.reset()
		loc, err := inventory.NewLocation(req.StoreID, req.Name, req.Code, req.Address, coords)
		if err != nil {
			return err
		}

		exists, err := repos.Locations().ExistsByCode(ctx, loc.StoreID, loc.Code)
		if err != nil {
			return err
		}
		if exists {
			return inventory.ErrDuplicateCode.WithMessage("Location code %s is already used in this store", loc.Code)
		}

		if req.IsDefault {
			if err := repos.Locations().ClearDefault(ctx, loc.StoreID); err != nil {
				return err
			}
			if err := loc.MarkDefault(); err != nil {
				return err
			}
		}

		if err := repos.Locations().Create(ctx, loc); err != nil {
			return err
		}
		buf.collect(loc)
		location = loc
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("location created",
		zap.String("store_id", location.StoreID.String()),
		zap.String("location_id", location.ID.String()),
		zap.String("code", location.Code),
		zap.Bool("is_default", location.IsDefault),
	)
	publishEvents(ctx, s.eventPublisher, s.logger, &buf)

	resp := ToLocationResponse(location)
	return &resp, nil
}

// GetByID retrieves a location
func (s *LocationService) GetByID(ctx context.Context, id uuid.UUID) (*LocationResponse, error) {
	loc, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToLocationResponse(loc)
	return &resp, nil
}

// List returns a store's locations, default first, then by name
func (s *LocationService) List(ctx context.Context, storeID uuid.UUID, activeOnly bool, page, pageSize int) (shared.Paginated[LocationResponse], error) {
	page, pageSize = normalizePage(page, pageSize)
	filter := shared.Filter{Page: page, PageSize: pageSize}

	locations, err := s.locationRepo.FindByStore(ctx, storeID, activeOnly, filter)
	if err != nil {
		return shared.Paginated[LocationResponse]{}, err
	}
	total, err := s.locationRepo.CountByStore(ctx, storeID, activeOnly)
	if err != nil {
		return shared.Paginated[LocationResponse]{}, err
	}

	items := make([]LocationResponse, len(locations))
	for i := range locations {
		items[i] = ToLocationResponse(&locations[i])
	}
	return shared.NewPaginated(items, total, page, pageSize), nil
}

// Update changes name, address and coordinates
func (s *LocationService) Update(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*LocationResponse, error) {
	coords, err := coordinatesFrom(req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(_ TransactionalRepositories, loc *inventory.Location) error {
		return loc.Update(req.Name, req.Address, coords)
	})
}

// Deactivate soft-disables a location that holds no stock and no reservations
func (s *LocationService) Deactivate(ctx context.Context, id uuid.UUID) (*LocationResponse, error) {
	return s.mutate(ctx, id, func(repos TransactionalRepositories, loc *inventory.Location) error {
		inUse, err := repos.Items().HasStockAtLocation(ctx, loc.ID)
		if err != nil {
			return err
		}
		if inUse {
			return inventory.ErrLocationInUse.WithMessage("Location %s still holds stock or reservations", loc.Code)
		}
		loc.Deactivate()
		return nil
	})
}

// Activate re-enables a location
func (s *LocationService) Activate(ctx context.Context, id uuid.UUID) (*LocationResponse, error) {
	return s.mutate(ctx, id, func(_ TransactionalRepositories, loc *inventory.Location) error {
		loc.Activate()
		return nil
	})
}

// SetDefault makes the location the store default, clearing the previous one
func (s *LocationService) SetDefault(ctx context.Context, id uuid.UUID) (*LocationResponse, error) {
	return s.mutate(ctx, id, func(repos TransactionalRepositories, loc *inventory.Location) error {
		if !loc.IsActive {
			return inventory.ErrDefaultLocationInactive
		}
		if loc.IsDefault {
			return nil
		}
		if err := repos.Locations().ClearDefault(ctx, loc.StoreID); err != nil {
			return err
		}
		return loc.MarkDefault()
	})
}

// Delete hard-deletes a location that no item and no movement references
func (s *LocationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		loc, err := repos.Locations().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		items, err := repos.Items().CountByLocation(ctx, loc.ID)
		if err != nil {
			return err
		}
		movements, err := repos.Movements().CountByLocation(ctx, loc.ID)
		if err != nil {
			return err
		}
		if items > 0 || movements > 0 {
			return inventory.ErrLocationInUse.WithMessage(
				"Location %s is referenced by %d items and %d movements; deactivate it instead", loc.Code, items, movements)
		}
		return repos.Locations().Delete(ctx, loc.ID)
	})
}

// mutate loads a location under a row lock, applies fn and saves it
func (s *LocationService) mutate(
	ctx context.Context,
	id uuid.UUID,
	fn func(repos TransactionalRepositories, loc *inventory.Location) error,
) (*LocationResponse, error) {
	var (
		buf      eventBuffer
		location *inventory.Location
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		buf.reset()
		loc, err := repos.Locations().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(repos, loc); err != nil {
			return err
		}
		if err := repos.Locations().Save(ctx, loc); err != nil {
			return err
		}
		buf.collect(loc)
		location = loc
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, s.logger, &buf)
	resp := ToLocationResponse(location)
	return &resp, nil
}
