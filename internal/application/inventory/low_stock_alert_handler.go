package inventory

import (
	"context"
	"fmt"

	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// StockAlert is a notification that an item needs replenishment
type StockAlert struct {
	StoreID         string `json:"store_id"`
	InventoryItemID string `json:"inventory_item_id"`
	LocationID      string `json:"location_id"`
	RefKind         string `json:"ref_kind"`
	RefID           string `json:"ref_id"`
	Status          string `json:"status"`
	AvailableQty    int64  `json:"available_qty"`
	ReorderPoint    int64  `json:"reorder_point"`
}

// StockAlertNotifier delivers stock alerts
type StockAlertNotifier interface {
	SendAlert(ctx context.Context, alert StockAlert) error
}

// LowStockAlertHandler turns StockStatusChanged events into alerts when an
// item becomes low or out of stock. Recoveries are only logged.
type LowStockAlertHandler struct {
	logger   *zap.Logger
	notifier StockAlertNotifier
}

// NewLowStockAlertHandler creates a new LowStockAlertHandler
func NewLowStockAlertHandler(logger *zap.Logger) *LowStockAlertHandler {
	return &LowStockAlertHandler{logger: logger}
}

// WithNotifier sets the notifier for sending alerts
func (h *LowStockAlertHandler) WithNotifier(notifier StockAlertNotifier) *LowStockAlertHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockAlertHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockStatusChanged}
}

// Handle processes a StockStatusChangedEvent
func (h *LowStockAlertHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*inventory.StockStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventTypeStockStatusChanged, event.EventType())
	}

	fields := []zap.Field{
		zap.String("store_id", event.StoreID().String()),
		zap.String("inventory_item_id", changed.InventoryItemID.String()),
		zap.String("location_id", changed.LocationID.String()),
		zap.String("ref", fmt.Sprintf("%s:%s", changed.RefKind, changed.RefID)),
		zap.String("from", string(changed.From)),
		zap.String("to", string(changed.To)),
		zap.Int64("available_qty", changed.AvailableQty),
		zap.Int64("reorder_point", changed.ReorderPoint),
	}
	if !changed.NeedsAttention() {
		h.logger.Info("stock level recovered", fields...)
		return nil
	}
	h.logger.Warn("stock level needs attention", fields...)

	if h.notifier == nil {
		return nil
	}
	alert := StockAlert{
		StoreID:         event.StoreID().String(),
		InventoryItemID: changed.InventoryItemID.String(),
		LocationID:      changed.LocationID.String(),
		RefKind:         string(changed.RefKind),
		RefID:           changed.RefID.String(),
		Status:          string(changed.To),
		AvailableQty:    changed.AvailableQty,
		ReorderPoint:    changed.ReorderPoint,
	}
	if err := h.notifier.SendAlert(ctx, alert); err != nil {
		// a lost notification must not fail the event
		h.logger.Error("failed to send stock alert", zap.String("inventory_item_id", alert.InventoryItemID), zap.Error(err))
	}
	return nil
}

var _ shared.EventHandler = (*LowStockAlertHandler)(nil)

// LoggingStockAlertNotifier writes alerts to the log
type LoggingStockAlertNotifier struct {
	logger *zap.Logger
}

// NewLoggingStockAlertNotifier creates a new logging notifier
func NewLoggingStockAlertNotifier(logger *zap.Logger) *LoggingStockAlertNotifier {
	return &LoggingStockAlertNotifier{logger: logger}
}

// SendAlert logs the stock alert
func (n *LoggingStockAlertNotifier) SendAlert(_ context.Context, alert StockAlert) error {
	n.logger.Warn("STOCK ALERT",
		zap.String("status", alert.Status),
		zap.String("location_id", alert.LocationID),
		zap.String("ref_id", alert.RefID),
		zap.Int64("available_qty", alert.AvailableQty),
		zap.Int64("reorder_point", alert.ReorderPoint),
	)
	return nil
}
