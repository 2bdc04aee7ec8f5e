package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LedgerService records stock movements and serves the movement history.
// Every recorded movement changes item quantities in the same transaction
// that appends its ledger rows.
type LedgerService struct {
	items          *ItemStore
	itemRepo       inventory.InventoryItemRepository
	movementRepo   inventory.StockMovementRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	items *ItemStore,
	itemRepo inventory.InventoryItemRepository,
	movementRepo inventory.StockMovementRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *LedgerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{
		items:        items,
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
		txScope:      txScope,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *LedgerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// RecordMovement validates and applies one movement. A TRANSFER returns
// two rows, the outbound leg first.
func (s *LedgerService) RecordMovement(ctx context.Context, req RecordMovementRequest) (_ []MovementResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "record_movement",
		telemetry.SpanAttrLocationID, req.LocationID,
		telemetry.SpanAttrRefKind, string(req.Ref.Kind),
		telemetry.SpanAttrRefID, req.Ref.ID,
		telemetry.SpanAttrMovementType, string(req.Type),
		telemetry.SpanAttrQuantity, req.Quantity,
	)
	defer telemetry.EndSpan(span, &err)

	in := req.toInput()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var (
		buf       eventBuffer
		movements []*inventory.StockMovement
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		buf.reset()
		var err error
		movements, _, err = s.record(ctx, repos, in, &buf)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(movements) > 0 {
		telemetry.SetAttributes(span, telemetry.SpanAttrCorrelationID, movements[0].CorrelationID)
	}

	for _, m := range movements {
		s.logger.Info("stock movement recorded",
			zap.String("movement_id", m.ID.String()),
			zap.String("correlation_id", m.CorrelationID.String()),
			zap.String("location_id", m.LocationID.String()),
			zap.String("product_ref", m.Ref.String()),
			zap.String("type", m.Type.String()),
			zap.Int64("effect", m.Effect),
			zap.Int64("quantity_after", m.QuantityAfter),
		)
	}
	publishEvents(ctx, s.eventPublisher, s.logger, &buf)

	out := make([]MovementResponse, len(movements))
	for i, m := range movements {
		out[i] = ToMovementResponse(m)
	}
	return out, nil
}

// record applies in within the caller's transaction. It returns the rows
// written and the items they changed, in the same order.
func (s *LedgerService) record(ctx context.Context, repos TransactionalRepositories, in inventory.MovementInput, buf *eventBuffer) ([]*inventory.StockMovement, []*inventory.InventoryItem, error) {
	source, err := activeLocation(ctx, repos, in.StoreID, in.LocationID)
	if err != nil {
		return nil, nil, err
	}
	in.StoreID = source.StoreID

	if in.Type == inventory.MovementTypeTransfer {
		return s.recordTransfer(ctx, repos, in, source, buf)
	}

	item, err := lockItem(ctx, repos, source.StoreID, source.ID, in.Ref)
	if err != nil {
		return nil, nil, err
	}
	effect := in.Effect()
	before := item.Quantity
	if in.UnitCost != nil && effect > 0 {
		if err := item.ApplyInboundCost(before, effect, *in.UnitCost); err != nil {
			return nil, nil, err
		}
	}
	if err := s.items.ApplyQuantityDelta(ctx, repos, item, effect); err != nil {
		return nil, nil, err
	}

	movement := inventory.NewMovement(in, source.ID, effect, before, uuid.Nil)
	items := []*inventory.InventoryItem{item}
	if err := appendMovements(ctx, repos, buf, items, movement); err != nil {
		return nil, nil, err
	}
	return []*inventory.StockMovement{movement}, items, nil
}

// recordTransfer moves units between two locations of the same store as a
// pair of rows sharing a correlation id.
func (s *LedgerService) recordTransfer(
	ctx context.Context,
	repos TransactionalRepositories,
	in inventory.MovementInput,
	source *inventory.Location,
	buf *eventBuffer,
) ([]*inventory.StockMovement, []*inventory.InventoryItem, error) {
	target, err := repos.Locations().FindByIDForShare(ctx, *in.TransferToLocationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, inventory.ErrInvalidTransferTarget.WithMessage("Transfer destination %s does not exist", *in.TransferToLocationID)
		}
		return nil, nil, err
	}
	if target.StoreID != source.StoreID {
		return nil, nil, inventory.ErrInvalidTransferTarget.WithMessage("Transfer destination belongs to another store")
	}
	if !target.IsActive {
		return nil, nil, inventory.ErrInvalidTransferTarget.WithMessage("Transfer destination %s is not active", target.Code)
	}

	locked, err := lockItemsOrdered(ctx, repos,
		lockKey{storeID: source.StoreID, locationID: source.ID, ref: in.Ref},
		lockKey{storeID: target.StoreID, locationID: target.ID, ref: in.Ref},
	)
	if err != nil {
		return nil, nil, err
	}
	from, to := locked[0], locked[1]

	// Units keep their valuation when they move unless a cost is given.
	var unitCost *decimal.Decimal
	switch {
	case in.UnitCost != nil:
		unitCost = in.UnitCost
	case from.AvgCostPrice.IsPositive():
		cost := from.AvgCostPrice
		unitCost = &cost
	}

	fromBefore := from.Quantity
	if err := s.items.ApplyQuantityDelta(ctx, repos, from, -in.Quantity); err != nil {
		return nil, nil, err
	}
	toBefore := to.Quantity
	if unitCost != nil {
		if err := to.ApplyInboundCost(toBefore, in.Quantity, *unitCost); err != nil {
			return nil, nil, err
		}
	}
	if err := s.items.ApplyQuantityDelta(ctx, repos, to, in.Quantity); err != nil {
		return nil, nil, err
	}

	correlationID := uuid.New()
	outLeg := inventory.NewMovement(in, source.ID, -in.Quantity, fromBefore, correlationID)
	inLeg := inventory.NewMovement(in, target.ID, in.Quantity, toBefore, correlationID)
	if unitCost != nil {
		outLeg.WithUnitCost(*unitCost)
		inLeg.WithUnitCost(*unitCost)
	}
	items := []*inventory.InventoryItem{from, to}
	if err := appendMovements(ctx, repos, buf, items, outLeg, inLeg); err != nil {
		return nil, nil, err
	}
	return []*inventory.StockMovement{outLeg, inLeg}, items, nil
}

// appendMovements writes ledger rows and queues their events along with
// the events raised by the touched items.
func appendMovements(
	ctx context.Context,
	repos TransactionalRepositories,
	buf *eventBuffer,
	items []*inventory.InventoryItem,
	movements ...*inventory.StockMovement,
) error {
	if err := repos.Movements().Create(ctx, movements...); err != nil {
		return err
	}
	byLocation := make(map[uuid.UUID]*inventory.InventoryItem, len(items))
	for _, item := range items {
		byLocation[item.LocationID] = item
	}
	for _, m := range movements {
		if item, ok := byLocation[m.LocationID]; ok {
			buf.add(inventory.NewStockMovementRecordedEvent(item, m))
		}
	}
	for _, item := range items {
		buf.collect(item)
	}
	return nil
}

// GetMovement retrieves one ledger row
func (s *LedgerService) GetMovement(ctx context.Context, id uuid.UUID) (*MovementResponse, error) {
	m, err := s.movementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToMovementResponse(m)
	return &resp, nil
}

// ListMovements lists ledger rows, newest first by default. It never writes.
func (s *LedgerService) ListMovements(ctx context.Context, filter MovementListFilter) (shared.Paginated[MovementResponse], error) {
	page, pageSize := normalizePage(filter.Page, filter.PageSize)

	movementFilter := inventory.MovementFilter{
		StoreID:         filter.StoreID,
		LocationID:      filter.LocationID,
		From:            filter.From,
		To:              filter.To,
		CorrelationID:   filter.CorrelationID,
		OrderID:         filter.OrderID,
		ReferenceNumber: strings.TrimSpace(filter.ReferenceNumber),
	}
	if filter.ProductID != nil || filter.VariantID != nil {
		ref, err := inventory.NewProductRef(filter.ProductID, filter.VariantID)
		if err != nil {
			return shared.Paginated[MovementResponse]{}, err
		}
		movementFilter.Ref = &ref
	}
	if filter.Type != "" {
		mt := inventory.MovementType(strings.ToUpper(filter.Type))
		if !mt.IsValid() {
			return shared.Paginated[MovementResponse]{}, inventory.ErrInvalidMovementType.WithMessage("Unknown movement type %q", filter.Type)
		}
		movementFilter.Type = mt
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return shared.Paginated[MovementResponse]{}, shared.ErrInvalidInput.WithMessage("Date range end is before its start")
	}

	orderDir := "desc"
	if strings.EqualFold(filter.OrderDir, "asc") {
		orderDir = "asc"
	}
	listFilter := shared.Filter{Page: page, PageSize: pageSize, OrderBy: "created_at", OrderDir: orderDir}

	movements, err := s.movementRepo.Find(ctx, movementFilter, listFilter)
	if err != nil {
		return shared.Paginated[MovementResponse]{}, err
	}
	total, err := s.movementRepo.Count(ctx, movementFilter)
	if err != nil {
		return shared.Paginated[MovementResponse]{}, err
	}
	return shared.NewPaginated(ToMovementResponses(movements), total, page, pageSize), nil
}

// ReconcileItem replays an item's ledger from zero and compares the result
// with the stored quantity and average cost.
func (s *LedgerService) ReconcileItem(ctx context.Context, locationID uuid.UUID, ref inventory.ProductRef) (*ReconcileResponse, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	item, err := s.itemRepo.FindByKey(ctx, locationID, ref)
	if err != nil {
		return nil, err
	}
	movements, err := s.movementRepo.FindByKey(ctx, locationID, ref)
	if err != nil {
		return nil, err
	}

	replay := inventory.ReplayLedger(movements)
	resp := &ReconcileResponse{
		ItemID:             item.ID,
		LocationID:         item.LocationID,
		Quantity:           item.Quantity,
		LedgerQuantity:     replay.Quantity,
		AvgCostPrice:       item.AvgCostPrice,
		LedgerAvgCostPrice: replay.CostBasis.AvgCostPrice,
		MovementCount:      replay.Rows,
	}
	resp.Consistent = resp.Quantity == resp.LedgerQuantity && resp.AvgCostPrice.Equal(resp.LedgerAvgCostPrice)
	if !resp.Consistent {
		s.logger.Warn("inventory item does not match its ledger",
			zap.String("item_id", item.ID.String()),
			zap.Int64("quantity", item.Quantity),
			zap.Int64("ledger_quantity", replay.Quantity),
			zap.String("avg_cost_price", item.AvgCostPrice.String()),
			zap.String("ledger_avg_cost_price", replay.CostBasis.AvgCostPrice.String()),
		)
	}
	return resp, nil
}
