package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appinv "github.com/minh261002/Shopee.vn-sub000/internal/application/inventory"
)

// ReservationHandler serves reserve, release and commit for order flows
type ReservationHandler struct {
	storeGuard
	reservations *appinv.ReservationService
}

// NewReservationHandler creates a ReservationHandler
func NewReservationHandler(locations *appinv.LocationService, reservations *appinv.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		storeGuard:   storeGuard{locations: locations},
		reservations: reservations,
	}
}

// ReservationRequest is the body of reserve and release
// @Description Units of one item to hold or give back
type ReservationRequest struct {
	StoreID    *string `json:"storeId,omitempty" binding:"omitempty,uuid"`
	LocationID string  `json:"locationId" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440002"`
	ItemRef
	Quantity int64 `json:"quantity" binding:"required,gt=0" example:"2"`
}

// CommitReservationRequest is the body of POST /reservations/commit
// @Description Reserved units that leave stock as an OUT movement
type CommitReservationRequest struct {
	ReservationRequest
	OrderID         *string `json:"orderId,omitempty" binding:"omitempty,uuid"`
	Reason          string  `json:"reason" binding:"max=500" example:"Order shipped"`
	ReferenceNumber string  `json:"referenceNumber" binding:"max=100" example:"SO-2026-1187"`
}

// toRequest checks store access and converts the body. It returns false
// when a response was already sent.
func (h *ReservationHandler) toRequest(c *gin.Context, req ReservationRequest) (appinv.ReservationRequest, bool) {
	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		h.BadRequest(c, "Invalid locationId: must be a UUID")
		return appinv.ReservationRequest{}, false
	}
	if !h.allowLocation(c, locationID) {
		return appinv.ReservationRequest{}, false
	}
	ref, err := req.query().ref()
	if err != nil {
		h.HandleError(c, err)
		return appinv.ReservationRequest{}, false
	}
	return appinv.ReservationRequest{
		StoreID:    optionalUUID(deref(req.StoreID)),
		LocationID: locationID,
		Ref:        ref,
		Quantity:   req.Quantity,
	}, true
}

// Reserve godoc
// @ID           reserveStock
// @Summary      Reserve stock
// @Description  Holds units for an order. Fails with INSUFFICIENT_STOCK when fewer units are available.
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string             false "Submit the reservation at most once"
// @Param        request         body   ReservationRequest true  "Reservation"
// @Success      200 {object} APIResponse[appinv.ItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse "Insufficient stock"
// @Security     BearerAuth
// @Router       /reservations/reserve [post]
func (h *ReservationHandler) Reserve(c *gin.Context) {
	var body ReservationRequest
	if !h.BindJSON(c, &body) {
		return
	}
	req, ok := h.toRequest(c, body)
	if !ok {
		return
	}
	item, err := h.reservations.Reserve(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Release godoc
// @ID           releaseStock
// @Summary      Release a reservation
// @Description  Gives held units back, e.g. when an order is cancelled
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string             false "Submit the release at most once"
// @Param        request         body   ReservationRequest true  "Reservation"
// @Success      200 {object} APIResponse[appinv.ItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse "Fewer units reserved"
// @Security     BearerAuth
// @Router       /reservations/release [post]
func (h *ReservationHandler) Release(c *gin.Context) {
	var body ReservationRequest
	if !h.BindJSON(c, &body) {
		return
	}
	req, ok := h.toRequest(c, body)
	if !ok {
		return
	}
	item, err := h.reservations.Release(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Commit godoc
// @ID           commitReservation
// @Summary      Commit a reservation
// @Description  Releases the held units and records the matching OUT movement in one transaction
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string                   false "Submit the commit at most once"
// @Param        request         body   CommitReservationRequest true  "Commit"
// @Success      201 {object} APIResponse[appinv.CommitReservationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse "Fewer units reserved"
// @Security     BearerAuth
// @Router       /reservations/commit [post]
func (h *ReservationHandler) Commit(c *gin.Context) {
	var body CommitReservationRequest
	if !h.BindJSON(c, &body) {
		return
	}
	req, ok := h.toRequest(c, body.ReservationRequest)
	if !ok {
		return
	}
	result, err := h.reservations.CommitReservation(c.Request.Context(), appinv.CommitReservationRequest{
		StoreID:         req.StoreID,
		LocationID:      req.LocationID,
		Ref:             req.Ref,
		Quantity:        req.Quantity,
		OrderID:         optionalUUID(deref(body.OrderID)),
		Reason:          body.Reason,
		ReferenceNumber: body.ReferenceNumber,
		CreatedBy:       actor(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
