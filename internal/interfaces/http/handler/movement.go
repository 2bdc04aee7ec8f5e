package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appinv "github.com/minh261002/Shopee.vn-sub000/internal/application/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// MovementHandler serves the stock movement ledger
type MovementHandler struct {
	storeGuard
	ledger *appinv.LedgerService
}

// NewMovementHandler creates a MovementHandler
func NewMovementHandler(locations *appinv.LocationService, ledger *appinv.LedgerService) *MovementHandler {
	return &MovementHandler{
		storeGuard: storeGuard{locations: locations},
		ledger:     ledger,
	}
}

// RecordMovementRequest is the body of POST /movements
// @Description quantity is the positive magnitude; ADJUSTMENT carries signedDelta instead
type RecordMovementRequest struct {
	StoreID    *string `json:"storeId,omitempty" binding:"omitempty,uuid"`
	LocationID string  `json:"locationId" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440002"`
	ItemRef
	Type                 string           `json:"type" binding:"required,movement_type" example:"IN"`
	Quantity             int64            `json:"quantity" binding:"gte=0" example:"40"`
	SignedDelta          int64            `json:"signedDelta" example:"-3"`
	UnitCost             *decimal.Decimal `json:"unitCost,omitempty" swaggertype:"string" example:"12.5000"`
	Reason               string           `json:"reason" binding:"max=500" example:"Purchase order received"`
	ReferenceNumber      string           `json:"referenceNumber" binding:"max=100" example:"PO-2026-0042"`
	TransferToLocationID *string          `json:"transferToLocationId,omitempty" binding:"omitempty,uuid"`
	OrderID              *string          `json:"orderId,omitempty" binding:"omitempty,uuid"`
}

// ListMovementsQuery filters GET /movements
type ListMovementsQuery struct {
	dto.PageQuery
	refQuery
	StoreID         string `form:"store_id" binding:"omitempty,uuid"`
	LocationID      string `form:"location_id" binding:"omitempty,uuid"`
	Type            string `form:"type" binding:"omitempty,movement_type"`
	From            string `form:"from"`
	To              string `form:"to"`
	CorrelationID   string `form:"correlation_id" binding:"omitempty,uuid"`
	OrderID         string `form:"order_id" binding:"omitempty,uuid"`
	ReferenceNumber string `form:"reference_number" binding:"max=100"`
	Order           string `form:"order" binding:"omitempty,oneof=asc desc"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Record godoc
// @ID           recordMovement
// @Summary      Record a stock movement
// @Description  Appends ledger rows and updates the item in one transaction. A TRANSFER answers with its outbound and inbound rows, which share a correlationId.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string                false "Submit the movement at most once"
// @Param        request         body   RecordMovementRequest true  "Movement"
// @Success      201 {object} APIResponse[[]appinv.MovementResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse "Duplicate Idempotency-Key"
// @Failure      422 {object} ErrorResponse "Negative stock or inactive location"
// @Security     BearerAuth
// @Router       /movements [post]
func (h *MovementHandler) Record(c *gin.Context) {
	var req RecordMovementRequest
	if !h.BindJSON(c, &req) {
		return
	}
	storeID := optionalUUID(deref(req.StoreID))
	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		h.BadRequest(c, "Invalid locationId: must be a UUID")
		return
	}
	if storeID != nil && !h.allowStore(c, *storeID) {
		return
	}
	if !h.allowLocation(c, locationID) {
		return
	}
	ref, err := req.query().ref()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	rows, err := h.ledger.RecordMovement(c.Request.Context(), appinv.RecordMovementRequest{
		StoreID:              storeID,
		LocationID:           locationID,
		Ref:                  ref,
		Type:                 inventory.MovementType(req.Type),
		Quantity:             req.Quantity,
		SignedDelta:          req.SignedDelta,
		UnitCost:             req.UnitCost,
		Reason:               req.Reason,
		ReferenceNumber:      req.ReferenceNumber,
		TransferToLocationID: optionalUUID(deref(req.TransferToLocationID)),
		OrderID:              optionalUUID(deref(req.OrderID)),
		CreatedBy:            actor(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rows)
}

// List godoc
// @ID           listMovements
// @Summary      List ledger rows
// @Description  Newest first unless order=asc. Tokens limited to stores must filter by store_id.
// @Tags         movements
// @Produce      json
// @Param        store_id         query string false "Store ID" format(uuid)
// @Param        location_id      query string false "Location ID" format(uuid)
// @Param        product_id       query string false "Product ID" format(uuid)
// @Param        variant_id       query string false "Variant ID" format(uuid)
// @Param        type             query string false "Movement type" Enums(IN, OUT, TRANSFER, ADJUSTMENT, RETURN, DAMAGED, EXPIRED)
// @Param        from             query string false "Created at or after (RFC 3339 or YYYY-MM-DD)"
// @Param        to               query string false "Created at or before (RFC 3339 or YYYY-MM-DD)"
// @Param        correlation_id   query string false "Transfer correlation ID" format(uuid)
// @Param        order_id         query string false "Order ID" format(uuid)
// @Param        reference_number query string false "Reference number"
// @Param        order            query string false "Sort direction" Enums(asc, desc)
// @Param        page             query int    false "Page number" default(1)
// @Param        limit            query int    false "Page size" default(20) maximum(100)
// @Success      200 {object} ListResponse[appinv.MovementResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /movements [get]
func (h *MovementHandler) List(c *gin.Context) {
	var q ListMovementsQuery
	if !h.BindQuery(c, &q) {
		return
	}
	storeID := optionalUUID(q.StoreID)
	if restricted(c) {
		if storeID == nil {
			h.Forbidden(c, "store_id is required for tokens limited to specific stores")
			return
		}
		if !h.allowStore(c, *storeID) {
			return
		}
	}
	from, err := parseTime(q.From)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	to, err := parseTime(q.To)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, err := h.ledger.ListMovements(c.Request.Context(), appinv.MovementListFilter{
		StoreID:         storeID,
		LocationID:      optionalUUID(q.LocationID),
		ProductID:       optionalUUID(q.ProductID),
		VariantID:       optionalUUID(q.VariantID),
		Type:            q.Type,
		From:            from,
		To:              to,
		CorrelationID:   optionalUUID(q.CorrelationID),
		OrderID:         optionalUUID(q.OrderID),
		ReferenceNumber: q.ReferenceNumber,
		OrderDir:        q.Order,
		Page:            q.Page,
		PageSize:        q.Limit,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	successList(c, page)
}

// GetByID godoc
// @ID           getMovement
// @Summary      Get a ledger row
// @Tags         movements
// @Produce      json
// @Param        id path string true "Movement ID" format(uuid)
// @Success      200 {object} APIResponse[appinv.MovementResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /movements/{id} [get]
func (h *MovementHandler) GetByID(c *gin.Context) {
	id, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}
	m, err := h.ledger.GetMovement(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !h.allowStore(c, m.StoreID) {
		return
	}
	h.Success(c, m)
}
