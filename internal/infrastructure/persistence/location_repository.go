package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLocationRepository implements LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByID finds a location by its ID
func (r *GormLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Location, error) {
	return r.findOne(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate finds a location with SELECT ... FOR UPDATE
func (r *GormLocationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Location, error) {
	return r.findOne(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// FindByIDForShare finds a location with SELECT ... FOR SHARE
func (r *GormLocationRepository) FindByIDForShare(ctx context.Context, id uuid.UUID) (*inventory.Location, error) {
	return r.findOne(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "SHARE"}), id)
}

func (r *GormLocationRepository) findOne(query *gorm.DB, id uuid.UUID) (*inventory.Location, error) {
	var model models.LocationModel
	if err := query.Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateNotFound(err, "Location not found")
	}
	return model.ToDomain(), nil
}

// FindByIDs finds several locations at once
func (r *GormLocationRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]inventory.Location, error) {
	if len(ids) == 0 {
		return []inventory.Location{}, nil
	}
	var locationModels []models.LocationModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&locationModels).Error; err != nil {
		return nil, err
	}
	return toDomainLocations(locationModels), nil
}

// ExistsByCode checks whether a code is taken within a store
func (r *GormLocationRepository) ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LocationModel{}).
		Where("store_id = ? AND code = ?", storeID, code).
		Count(&count).Error
	return count > 0, err
}

// FindByStore lists a store's locations, default first, then by name
func (r *GormLocationRepository) FindByStore(ctx context.Context, storeID uuid.UUID, activeOnly bool, filter shared.Filter) ([]inventory.Location, error) {
	query := r.storeScope(r.db.WithContext(ctx), storeID, activeOnly)
	if filter.OrderBy != "" {
		query = query.Order(orderClause(filter.OrderBy, filter.OrderDir, LocationSortFields, "name"))
	} else {
		query = query.Order("is_default DESC").Order("name ASC").Order("id ASC")
	}
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var locationModels []models.LocationModel
	if err := query.Find(&locationModels).Error; err != nil {
		return nil, err
	}
	return toDomainLocations(locationModels), nil
}

// CountByStore counts a store's locations
func (r *GormLocationRepository) CountByStore(ctx context.Context, storeID uuid.UUID, activeOnly bool) (int64, error) {
	var count int64
	err := r.storeScope(r.db.WithContext(ctx).Model(&models.LocationModel{}), storeID, activeOnly).Count(&count).Error
	return count, err
}

func (r *GormLocationRepository) storeScope(query *gorm.DB, storeID uuid.UUID, activeOnly bool) *gorm.DB {
	query = query.Where("store_id = ?", storeID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	return query
}

// FindDefault returns the store's default location
func (r *GormLocationRepository) FindDefault(ctx context.Context, storeID uuid.UUID) (*inventory.Location, error) {
	var model models.LocationModel
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND is_default = ?", storeID, true).
		First(&model).Error
	if err != nil {
		return nil, translateNotFound(err, "Store has no default location")
	}
	return model.ToDomain(), nil
}

// ClearDefault unsets the default flag on every location of the store.
// Cleared rows get a new version so stale copies fail their next Save.
func (r *GormLocationRepository) ClearDefault(ctx context.Context, storeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.LocationModel{}).
		Where("store_id = ? AND is_default = ?", storeID, true).
		Updates(map[string]any{
			"is_default": false,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().UTC(),
		}).Error
}

// Create inserts a new location. A unique violation (code or default) is
// reported as a concurrency conflict so the caller re-checks and retries.
func (r *GormLocationRepository) Create(ctx context.Context, location *inventory.Location) error {
	model := models.LocationModelFromDomain(location)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateKey(err) {
			return shared.ErrConcurrencyConflict.WithMessage("Location %s was created concurrently", location.Code)
		}
		return err
	}
	return nil
}

// Save updates an existing location if its version is unchanged
func (r *GormLocationRepository) Save(ctx context.Context, location *inventory.Location) error {
	location.Touch()
	model := models.LocationModelFromDomain(location)
	result := r.db.WithContext(ctx).
		Model(&models.LocationModel{}).
		Where("id = ? AND version = ?", location.ID, location.Version).
		Updates(map[string]any{
			"name":       model.Name,
			"address":    model.Address,
			"latitude":   model.Latitude,
			"longitude":  model.Longitude,
			"is_active":  model.IsActive,
			"is_default": model.IsDefault,
			"version":    gorm.Expr("version + 1"),
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return shared.ErrConcurrencyConflict.WithMessage("Another default location was set concurrently")
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict.WithMessage("Location was modified by another transaction")
	}
	location.IncrementVersion()
	return nil
}

// Delete hard-deletes a location
func (r *GormLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.LocationModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound.WithMessage("Location not found")
	}
	return nil
}

func toDomainLocations(locationModels []models.LocationModel) []inventory.Location {
	locations := make([]inventory.Location, len(locationModels))
	for i := range locationModels {
		locations[i] = *locationModels[i].ToDomain()
	}
	return locations
}

// Ensure GormLocationRepository implements LocationRepository
var _ inventory.LocationRepository = (*GormLocationRepository)(nil)
