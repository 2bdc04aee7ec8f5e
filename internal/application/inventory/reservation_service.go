package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ReservationService is the façade used by checkout and fulfilment flows
// to hold, release and ship stock. Release and CommitReservation are the
// two mutually exclusive ways a reservation ends.
type ReservationService struct {
	items          *ItemStore
	ledger         *LedgerService
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewReservationService creates a new ReservationService
func NewReservationService(items *ItemStore, ledger *LedgerService, txScope TransactionScope, logger *zap.Logger) *ReservationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReservationService{
		items:   items,
		ledger:  ledger,
		txScope: txScope,
		logger:  logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ReservationService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Reserve holds qty available units. The availability check and the
// reservation happen under the same row lock.
func (s *ReservationService) Reserve(ctx context.Context, req ReservationRequest) (_ *ItemResponse, err error) {
	ctx, span := startReservationSpan(ctx, "reserve", req.LocationID, req.Ref, req.Quantity)
	defer telemetry.EndSpan(span, &err)
	return s.withItem(ctx, req, inventory.ErrInsufficientStock, func(repos TransactionalRepositories, item *inventory.InventoryItem) error {
		if err := item.EnsureAvailable(req.Quantity); err != nil {
			return err
		}
		if err := s.items.AdjustReservation(ctx, repos, item, req.Quantity); err != nil {
			return err
		}
		item.AddDomainEvent(inventory.NewStockReservedEvent(item, req.Quantity))
		return nil
	})
}

// Release returns qty reserved units to the available pool, used when an
// order is cancelled.
func (s *ReservationService) Release(ctx context.Context, req ReservationRequest) (_ *ItemResponse, err error) {
	ctx, span := startReservationSpan(ctx, "release", req.LocationID, req.Ref, req.Quantity)
	defer telemetry.EndSpan(span, &err)
	return s.withItem(ctx, req, inventory.ErrInsufficientAvailable, func(repos TransactionalRepositories, item *inventory.InventoryItem) error {
		if err := s.items.AdjustReservation(ctx, repos, item, -req.Quantity); err != nil {
			return err
		}
		item.AddDomainEvent(inventory.NewReservationReleasedEvent(item, req.Quantity))
		return nil
	})
}

// CommitReservation ships qty reserved units. The reservation drops first,
// then the ledger records an OUT movement referencing the order; both
// happen in one transaction.
func (s *ReservationService) CommitReservation(ctx context.Context, req CommitReservationRequest) (_ *CommitReservationResponse, err error) {
	ctx, span := startReservationSpan(ctx, "commit", req.LocationID, req.Ref, req.Quantity)
	defer telemetry.EndSpan(span, &err)

	in := inventory.MovementInput{
		LocationID:      req.LocationID,
		Ref:             req.Ref,
		Type:            inventory.MovementTypeOut,
		Quantity:        req.Quantity,
		Reason:          req.Reason,
		ReferenceNumber: req.ReferenceNumber,
		OrderID:         req.OrderID,
		CreatedBy:       req.CreatedBy,
	}
	if req.StoreID != nil {
		in.StoreID = *req.StoreID
	}
	if in.Reason == "" {
		in.Reason = "reservation committed"
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var (
		buf      eventBuffer
		result   *inventory.InventoryItem
		movement *inventory.StockMovement
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		buf.reset()
		loc, err := activeLocation(ctx, repos, in.StoreID, in.LocationID)
		if err != nil {
			return err
		}
		item, err := repos.Items().FindByKeyForUpdate(ctx, loc.ID, in.Ref)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return inventory.ErrInsufficientAvailable.WithMessage("Nothing is reserved for %s at this location", in.Ref)
			}
			return err
		}
		if err := s.items.AdjustReservation(ctx, repos, item, -in.Quantity); err != nil {
			return err
		}
		buf.collect(item)

		movements, items, err := s.ledger.record(ctx, repos, in, &buf)
		if err != nil {
			return err
		}
		result, movement = items[0], movements[0]
		result.AddDomainEvent(inventory.NewReservationCommittedEvent(result, in.Quantity))
		buf.collect(result)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("reservation committed",
		zap.String("item_id", result.ID.String()),
		zap.Int64("quantity", req.Quantity),
		zap.String("movement_id", movement.ID.String()),
	)
	publishEvents(ctx, s.eventPublisher, s.logger, &buf)

	return &CommitReservationResponse{
		Item:     ToItemResponse(result),
		Movement: ToMovementResponse(movement),
	}, nil
}

// withItem locks the existing item of the request's pair and applies fn.
// missing is returned when the pair has no item row yet.
func (s *ReservationService) withItem(
	ctx context.Context,
	req ReservationRequest,
	missing *shared.DomainError,
	fn func(repos TransactionalRepositories, item *inventory.InventoryItem) error,
) (*ItemResponse, error) {
	if err := req.Ref.Validate(); err != nil {
		return nil, err
	}
	if req.Quantity <= 0 {
		return nil, inventory.ErrInvalidQuantity
	}
	var storeID uuid.UUID
	if req.StoreID != nil {
		storeID = *req.StoreID
	}

	var (
		buf    eventBuffer
		result *inventory.InventoryItem
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		buf.reset()
		loc, err := activeLocation(ctx, repos, storeID, req.LocationID)
		if err != nil {
			return err
		}
		item, err := repos.Items().FindByKeyForUpdate(ctx, loc.ID, req.Ref)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return missing.WithMessage("No stock of %s at this location", req.Ref)
			}
			return err
		}
		if err := fn(repos, item); err != nil {
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

func startReservationSpan(ctx context.Context, method string, locationID uuid.UUID, ref inventory.ProductRef, qty int64) (context.Context, trace.Span) {
	return telemetry.StartServiceSpan(ctx, "reservations", method,
		telemetry.SpanAttrLocationID, locationID,
		telemetry.SpanAttrRefKind, string(ref.Kind),
		telemetry.SpanAttrRefID, ref.ID,
		telemetry.SpanAttrQuantity, qty,
	)
}
