package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes a sort direction to ASC or DESC, defaulting to DESC.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField if the whitelist allows it, otherwise defaultField.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// orderClause builds "<field> <dir>" from whitelisted input. The id tiebreak
// keeps pages stable when the sort column has duplicates.
func orderClause(orderBy, orderDir string, allowedFields map[string]bool, defaultField string) string {
	field := ValidateSortField(orderBy, allowedFields, defaultField)
	dir := ValidateSortOrder(orderDir)
	return field + " " + dir + ", id " + dir
}

// LocationSortFields contains allowed sort fields for locations
var LocationSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"is_active":  true,
	"is_default": true,
}

// InventoryItemSortFields contains allowed sort fields for inventory items
var InventoryItemSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"location_id":     true,
	"quantity":        true,
	"reserved_qty":    true,
	"reorder_point":   true,
	"avg_cost_price":  true,
	"last_cost_price": true,
}

// StockMovementSortFields contains allowed sort fields for ledger rows
var StockMovementSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"type":       true,
	"quantity":   true,
}
