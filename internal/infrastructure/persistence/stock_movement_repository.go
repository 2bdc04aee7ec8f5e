package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockMovementRepository implements the append-only ledger using GORM.
// It never issues UPDATE or DELETE statements.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Create appends movements in one INSERT
func (r *GormStockMovementRepository) Create(ctx context.Context, movements ...*inventory.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	rows := make([]*models.StockMovementModel, len(movements))
	for i, m := range movements {
		rows[i] = models.StockMovementModelFromDomain(m)
	}
	return r.db.WithContext(ctx).Create(rows).Error
}

// FindByID finds a movement by its ID
func (r *GormStockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockMovement, error) {
	var model models.StockMovementModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateNotFound(err, "Stock movement not found")
	}
	return model.ToDomain(), nil
}

// Find lists movements, newest first unless the filter orders otherwise
func (r *GormStockMovementRepository) Find(ctx context.Context, movementFilter inventory.MovementFilter, filter shared.Filter) ([]inventory.StockMovement, error) {
	query := applyMovementFilter(r.db.WithContext(ctx), movementFilter).
		Order(orderClause(filter.OrderBy, filter.OrderDir, StockMovementSortFields, "created_at"))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var rows []models.StockMovementModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainMovements(rows), nil
}

// Count counts movements matching the filter
func (r *GormStockMovementRepository) Count(ctx context.Context, movementFilter inventory.MovementFilter) (int64, error) {
	var count int64
	err := applyMovementFilter(r.db.WithContext(ctx).Model(&models.StockMovementModel{}), movementFilter).Count(&count).Error
	return count, err
}

// FindByKey returns an item's movements in creation order
func (r *GormStockMovementRepository) FindByKey(ctx context.Context, locationID uuid.UUID, ref inventory.ProductRef) ([]inventory.StockMovement, error) {
	var rows []models.StockMovementModel
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND ref_kind = ? AND ref_id = ?", locationID, string(ref.Kind), ref.ID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainMovements(chainTies(rows)), nil
}

// chainTies reorders rows sharing a created_at so that each row's
// quantity_before matches the quantity_after of the row before it. The id
// order inside a tie is random and says nothing about application order.
// Rows must already be sorted by created_at.
func chainTies(rows []models.StockMovementModel) []models.StockMovementModel {
	out := make([]models.StockMovementModel, 0, len(rows))
	for i := 0; i < len(rows); {
		j := i + 1
		for j < len(rows) && rows[j].CreatedAt.Equal(rows[i].CreatedAt) {
			j++
		}
		group := append([]models.StockMovementModel(nil), rows[i:j]...)
		i = j
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}

		next := -1
		if len(out) > 0 {
			next = indexBefore(group, out[len(out)-1].QuantityAfter)
		}
		if next < 0 {
			next = chainHead(group)
		}
		for next >= 0 {
			row := group[next]
			out = append(out, row)
			group = append(group[:next], group[next+1:]...)
			next = indexBefore(group, row.QuantityAfter)
		}
		// Broken chain: keep whatever is left in id order
		out = append(out, group...)
	}
	return out
}

func indexBefore(group []models.StockMovementModel, qty int64) int {
	for k := range group {
		if group[k].QuantityBefore == qty {
			return k
		}
	}
	return -1
}

// chainHead finds the row no other row in the group leads into
func chainHead(group []models.StockMovementModel) int {
	for k := range group {
		led := false
		for m := range group {
			if m != k && group[m].QuantityAfter == group[k].QuantityBefore {
				led = true
				break
			}
		}
		if !led {
			return k
		}
	}
	return 0
}

// CountByLocation counts movements recorded at or targeting a location
func (r *GormStockMovementRepository) CountByLocation(ctx context.Context, locationID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.StockMovementModel{}).
		Where("location_id = ? OR transfer_to_location_id = ? OR transfer_from_location_id = ?", locationID, locationID, locationID).
		Count(&count).Error
	return count, err
}

func applyMovementFilter(query *gorm.DB, f inventory.MovementFilter) *gorm.DB {
	if f.StoreID != nil {
		query = query.Where("store_id = ?", *f.StoreID)
	}
	if f.LocationID != nil {
		query = query.Where("location_id = ?", *f.LocationID)
	}
	if f.Ref != nil {
		query = query.Where("ref_kind = ? AND ref_id = ?", string(f.Ref.Kind), f.Ref.ID)
	}
	if f.Type != "" {
		query = query.Where("type = ?", string(f.Type))
	}
	if f.From != nil {
		query = query.Where("created_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		query = query.Where("created_at <= ?", f.To.UTC())
	}
	if f.CorrelationID != nil {
		query = query.Where("correlation_id = ?", *f.CorrelationID)
	}
	if f.OrderID != nil {
		query = query.Where("order_id = ?", *f.OrderID)
	}
	if f.ReferenceNumber != "" {
		query = query.Where("reference_number = ?", f.ReferenceNumber)
	}
	return query
}

func toDomainMovements(rows []models.StockMovementModel) []inventory.StockMovement {
	movements := make([]inventory.StockMovement, len(rows))
	for i := range rows {
		movements[i] = *rows[i].ToDomain()
	}
	return movements
}

// Ensure GormStockMovementRepository implements StockMovementRepository
var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
