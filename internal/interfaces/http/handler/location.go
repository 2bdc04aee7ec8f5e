package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appinv "github.com/minh261002/Shopee.vn-sub000/internal/application/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/interfaces/http/dto"
)

// LocationHandler serves the location registry
type LocationHandler struct {
	storeGuard
}

// NewLocationHandler creates a LocationHandler
func NewLocationHandler(locations *appinv.LocationService) *LocationHandler {
	return &LocationHandler{storeGuard: storeGuard{locations: locations}}
}

// CreateLocationRequest is the body of POST /stores/{storeId}/locations
// @Description Location registration
type CreateLocationRequest struct {
	Name      string   `json:"name" binding:"required,max=255" example:"Hanoi warehouse"`
	Code      string   `json:"code" binding:"required,max=50" example:"HN-01"`
	Address   string   `json:"address" binding:"max=500" example:"12 Tran Hung Dao, Hanoi"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude" example:"21.0245"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude" example:"105.8412"`
	IsDefault bool     `json:"isDefault" example:"false"`
}

// UpdateLocationRequest is the body of PUT /locations/{id}
// @Description Descriptive location attributes
type UpdateLocationRequest struct {
	Name      string   `json:"name" binding:"required,max=255" example:"Hanoi warehouse"`
	Address   string   `json:"address" binding:"max=500"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
}

// ListLocationsQuery filters GET /stores/{storeId}/locations
type ListLocationsQuery struct {
	dto.PageQuery
	ActiveOnly bool `form:"active_only"`
}

// Create godoc
// @ID           createLocation
// @Summary      Register a location
// @Description  Creates a location in the store. Codes are unique per store; a default location replaces the previous default.
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        storeId path string true "Store ID" format(uuid)
// @Param        request body CreateLocationRequest true "Location"
// @Success      201 {object} APIResponse[appinv.LocationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse "Duplicate code"
// @Security     BearerAuth
// @Router       /stores/{storeId}/locations [post]
func (h *LocationHandler) Create(c *gin.Context) {
	storeID, ok := h.PathUUID(c, "storeId")
	if !ok {
		return
	}
	var req CreateLocationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	loc, err := h.locations.Create(c.Request.Context(), appinv.CreateLocationRequest{
		StoreID:   storeID,
		Name:      req.Name,
		Code:      req.Code,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, loc)
}

// List godoc
// @ID           listLocations
// @Summary      List a store's locations
// @Description  Default location first, then by name
// @Tags         locations
// @Produce      json
// @Param        storeId     path  string true  "Store ID" format(uuid)
// @Param        active_only query bool   false "Only active locations"
// @Param        page        query int    false "Page number" default(1)
// @Param        limit       query int    false "Page size" default(20) maximum(100)
// @Success      200 {object} ListResponse[appinv.LocationResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /stores/{storeId}/locations [get]
func (h *LocationHandler) List(c *gin.Context) {
	storeID, ok := h.PathUUID(c, "storeId")
	if !ok {
		return
	}
	var q ListLocationsQuery
	if !h.BindQuery(c, &q) {
		return
	}

	page, err := h.locations.List(c.Request.Context(), storeID, q.ActiveOnly, q.Page, q.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	successList(c, page)
}

// GetByID godoc
// @ID           getLocation
// @Summary      Get a location
// @Tags         locations
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Success      200 {object} APIResponse[appinv.LocationResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations/{id} [get]
func (h *LocationHandler) GetByID(c *gin.Context) {
	id, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}
	loc, err := h.locations.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !h.allowStore(c, loc.StoreID) {
		return
	}
	h.Success(c, loc)
}

// Update godoc
// @ID           updateLocation
// @Summary      Update a location
// @Description  Changes name, address and coordinates. Code and store are immutable.
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        id      path string                true "Location ID" format(uuid)
// @Param        request body UpdateLocationRequest true "Attributes"
// @Success      200 {object} APIResponse[appinv.LocationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations/{id} [put]
func (h *LocationHandler) Update(c *gin.Context) {
	id, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}
	var req UpdateLocationRequest
	if !h.BindJSON(c, &req) || !h.allowLocation(c, id) {
		return
	}

	loc, err := h.locations.Update(c.Request.Context(), id, appinv.UpdateLocationRequest{
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, loc)
}

// Delete godoc
// @ID           deleteLocation
// @Summary      Delete a location
// @Description  Only locations no item or movement references can be deleted; deactivate the others.
// @Tags         locations
// @Param        id path string true "Location ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse "Location in use"
// @Security     BearerAuth
// @Router       /locations/{id} [delete]
func (h *LocationHandler) Delete(c *gin.Context) {
	id, ok := h.PathUUID(c, "id")
	if !ok || !h.allowLocation(c, id) {
		return
	}
	if err := h.locations.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Deactivate godoc
// @ID           deactivateLocation
// @Summary      Deactivate a location
// @Description  Fails with LOCATION_IN_USE while any item there holds stock or reservations
// @Tags         locations
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Success      200 {object} APIResponse[appinv.LocationResponse]
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations/{id}/deactivate [post]
func (h *LocationHandler) Deactivate(c *gin.Context) {
	h.lifecycle(c, h.locations.Deactivate)
}

// Activate godoc
// @ID           activateLocation
// @Summary      Activate a location
// @Tags         locations
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Success      200 {object} APIResponse[appinv.LocationResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations/{id}/activate [post]
func (h *LocationHandler) Activate(c *gin.Context) {
	h.lifecycle(c, h.locations.Activate)
}

// SetDefault godoc
// @ID           setDefaultLocation
// @Summary      Make a location the store default
// @Tags         locations
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Success      200 {object} APIResponse[appinv.LocationResponse]
// @Failure      422 {object} ErrorResponse "Location inactive"
// @Security     BearerAuth
// @Router       /locations/{id}/default [post]
func (h *LocationHandler) SetDefault(c *gin.Context) {
	h.lifecycle(c, h.locations.SetDefault)
}

func (h *LocationHandler) lifecycle(c *gin.Context, op func(ctx context.Context, id uuid.UUID) (*appinv.LocationResponse, error)) {
	id, ok := h.PathUUID(c, "id")
	if !ok || !h.allowLocation(c, id) {
		return
	}
	loc, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, loc)
}
