package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// availableExpr is the derived sellable quantity in SQL
const availableExpr = "(quantity - reserved_qty)"

// GormInventoryItemRepository implements InventoryItemRepository using GORM
type GormInventoryItemRepository struct {
	db *gorm.DB
}

// NewGormInventoryItemRepository creates a new GormInventoryItemRepository
func NewGormInventoryItemRepository(db *gorm.DB) *GormInventoryItemRepository {
	return &GormInventoryItemRepository{db: db}
}

// FindByID finds an inventory item by its ID
func (r *GormInventoryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	var model models.InventoryItemModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateNotFound(err, "Inventory item not found")
	}
	return model.ToDomain(), nil
}

// FindByKey finds the item of a (location, product ref) pair
func (r *GormInventoryItemRepository) FindByKey(ctx context.Context, locationID uuid.UUID, ref inventory.ProductRef) (*inventory.InventoryItem, error) {
	return r.findByKey(r.db.WithContext(ctx), locationID, ref)
}

// FindByKeyForUpdate finds the item with SELECT ... FOR UPDATE
func (r *GormInventoryItemRepository) FindByKeyForUpdate(ctx context.Context, locationID uuid.UUID, ref inventory.ProductRef) (*inventory.InventoryItem, error) {
	return r.findByKey(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), locationID, ref)
}

func (r *GormInventoryItemRepository) findByKey(query *gorm.DB, locationID uuid.UUID, ref inventory.ProductRef) (*inventory.InventoryItem, error) {
	var model models.InventoryItemModel
	err := query.
		Where("location_id = ? AND ref_kind = ? AND ref_id = ?", locationID, string(ref.Kind), ref.ID).
		First(&model).Error
	if err != nil {
		return nil, translateNotFound(err, "Inventory item not found")
	}
	return model.ToDomain(), nil
}

// GetOrCreate returns the existing item or inserts an empty one. The insert
// uses ON CONFLICT DO NOTHING so concurrent first calls converge on one row.
func (r *GormInventoryItemRepository) GetOrCreate(ctx context.Context, storeID, locationID uuid.UUID, ref inventory.ProductRef) (*inventory.InventoryItem, error) {
	item, err := r.FindByKey(ctx, locationID, ref)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	item, err = inventory.NewInventoryItem(storeID, locationID, ref)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "location_id"}, {Name: "ref_kind"}, {Name: "ref_id"}},
			DoNothing: true,
		}).
		Create(models.InventoryItemModelFromDomain(item))
	if result.Error != nil {
		return nil, result.Error
	}

	// Another transaction won the insert
	if result.RowsAffected == 0 {
		return r.FindByKey(ctx, locationID, ref)
	}
	return item, nil
}

// Find lists items matching the filter
func (r *GormInventoryItemRepository) Find(ctx context.Context, itemFilter inventory.ItemFilter, filter shared.Filter) ([]inventory.InventoryItem, error) {
	query := applyItemFilter(r.db.WithContext(ctx), itemFilter).
		Order(orderClause(filter.OrderBy, filter.OrderDir, InventoryItemSortFields, "created_at"))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var itemModels []models.InventoryItemModel
	if err := query.Find(&itemModels).Error; err != nil {
		return nil, err
	}
	items := make([]inventory.InventoryItem, len(itemModels))
	for i := range itemModels {
		items[i] = *itemModels[i].ToDomain()
	}
	return items, nil
}

// Count counts items matching the filter
func (r *GormInventoryItemRepository) Count(ctx context.Context, itemFilter inventory.ItemFilter) (int64, error) {
	var count int64
	err := applyItemFilter(r.db.WithContext(ctx).Model(&models.InventoryItemModel{}), itemFilter).Count(&count).Error
	return count, err
}

// HasStockAtLocation reports whether any item at the location has quantity or reservations
func (r *GormInventoryItemRepository) HasStockAtLocation(ctx context.Context, locationID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InventoryItemModel{}).
		Where("location_id = ? AND (quantity > 0 OR reserved_qty > 0)", locationID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

// CountByLocation counts item rows at a location
func (r *GormInventoryItemRepository) CountByLocation(ctx context.Context, locationID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InventoryItemModel{}).
		Where("location_id = ?", locationID).
		Count(&count).Error
	return count, err
}

// SaveWithLock writes the item if its version is unchanged and bumps the version
func (r *GormInventoryItemRepository) SaveWithLock(ctx context.Context, item *inventory.InventoryItem) error {
	item.Touch()
	result := r.db.WithContext(ctx).
		Model(&models.InventoryItemModel{}).
		Where("id = ? AND version = ?", item.ID, item.Version).
		Updates(map[string]any{
			"quantity":        item.Quantity,
			"reserved_qty":    item.ReservedQty,
			"min_stock_level": item.MinStockLevel,
			"max_stock_level": item.MaxStockLevel,
			"reorder_point":   item.ReorderPoint,
			"avg_cost_price":  item.AvgCostPrice,
			"last_cost_price": item.LastCostPrice,
			"version":         gorm.Expr("version + 1"),
			"updated_at":      item.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict.WithMessage("Inventory item was modified by another transaction")
	}
	item.IncrementVersion()
	return nil
}

func applyItemFilter(query *gorm.DB, f inventory.ItemFilter) *gorm.DB {
	if f.StoreID != nil {
		query = query.Where("store_id = ?", *f.StoreID)
	}
	if f.LocationID != nil {
		query = query.Where("location_id = ?", *f.LocationID)
	}
	if f.Ref != nil {
		query = query.Where("ref_kind = ? AND ref_id = ?", string(f.Ref.Kind), f.Ref.ID)
	}
	switch f.StockStatus {
	case inventory.StockStatusOutOfStock:
		query = query.Where(availableExpr + " <= 0")
	case inventory.StockStatusLowStock:
		query = query.Where(availableExpr+" > 0 AND "+availableExpr+" <= reorder_point")
	case inventory.StockStatusInStock:
		query = query.Where(availableExpr + " > reorder_point")
	}
	return query
}

// Ensure GormInventoryItemRepository implements InventoryItemRepository
var _ inventory.InventoryItemRepository = (*GormInventoryItemRepository)(nil)
