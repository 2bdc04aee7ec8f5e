package inventory

// StockStatus is the low-stock classification of an item.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "IN_STOCK"
	StockStatusLowStock   StockStatus = "LOW_STOCK"
	StockStatusOutOfStock StockStatus = "OUT_OF_STOCK"
)

// IsValid returns true if the status is known
func (s StockStatus) IsValid() bool {
	switch s {
	case StockStatusInStock, StockStatusLowStock, StockStatusOutOfStock:
		return true
	}
	return false
}

// ClassifyStock classifies an available quantity against a reorder point.
func ClassifyStock(availableQty, reorderPoint int64) StockStatus {
	switch {
	case availableQty <= 0:
		return StockStatusOutOfStock
	case availableQty <= reorderPoint:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}
