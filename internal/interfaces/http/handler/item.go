package handler

import (
	"github.com/gin-gonic/gin"
	appinv "github.com/minh261002/Shopee.vn-sub000/internal/application/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/interfaces/http/dto"
)

// ItemHandler serves inventory items and their reconciliation
type ItemHandler struct {
	storeGuard
	items  *appinv.ItemStore
	ledger *appinv.LedgerService
}

// NewItemHandler creates an ItemHandler
func NewItemHandler(locations *appinv.LocationService, items *appinv.ItemStore, ledger *appinv.LedgerService) *ItemHandler {
	return &ItemHandler{
		storeGuard: storeGuard{locations: locations},
		items:      items,
		ledger:     ledger,
	}
}

// ItemRef names the product or the variant an item holds; exactly one is set
type ItemRef struct {
	ProductID *string `json:"productId,omitempty" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440003"`
	VariantID *string `json:"variantId,omitempty" binding:"omitempty,uuid"`
}

func (r ItemRef) query() refQuery {
	q := refQuery{}
	if r.ProductID != nil {
		q.ProductID = *r.ProductID
	}
	if r.VariantID != nil {
		q.VariantID = *r.VariantID
	}
	return q
}

// EnsureItemRequest is the body of POST /locations/{id}/items
type EnsureItemRequest struct {
	ItemRef
}

// SetThresholdsRequest is the body of PUT /locations/{id}/items/thresholds
// @Description Replenishment thresholds; quantities are not touched
type SetThresholdsRequest struct {
	ItemRef
	MinStockLevel int64  `json:"minStockLevel" binding:"gte=0" example:"10"`
	MaxStockLevel *int64 `json:"maxStockLevel" binding:"omitempty,gte=0" example:"500"`
	ReorderPoint  int64  `json:"reorderPoint" binding:"gte=0" example:"25"`
}

// ListItemsQuery filters GET /stores/{storeId}/items
type ListItemsQuery struct {
	dto.PageQuery
	refQuery
	LocationID  string `form:"location_id" binding:"omitempty,uuid"`
	StockStatus string `form:"stock_status" binding:"omitempty,stock_status"`
}

// List godoc
// @ID           listItems
// @Summary      List a store's inventory items
// @Tags         items
// @Produce      json
// @Param        storeId      path  string true  "Store ID" format(uuid)
// @Param        location_id  query string false "Location ID" format(uuid)
// @Param        product_id   query string false "Product ID" format(uuid)
// @Param        variant_id   query string false "Variant ID" format(uuid)
// @Param        stock_status query string false "Stock status" Enums(IN_STOCK, LOW_STOCK, OUT_OF_STOCK)
// @Param        page         query int    false "Page number" default(1)
// @Param        limit        query int    false "Page size" default(20) maximum(100)
// @Success      200 {object} ListResponse[appinv.ItemResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /stores/{storeId}/items [get]
func (h *ItemHandler) List(c *gin.Context) {
	storeID, ok := h.PathUUID(c, "storeId")
	if !ok {
		return
	}
	var q ListItemsQuery
	if !h.BindQuery(c, &q) {
		return
	}

	page, err := h.items.List(c.Request.Context(), appinv.ItemListFilter{
		StoreID:     &storeID,
		LocationID:  optionalUUID(q.LocationID),
		ProductID:   optionalUUID(q.ProductID),
		VariantID:   optionalUUID(q.VariantID),
		StockStatus: q.StockStatus,
		Page:        q.Page,
		PageSize:    q.Limit,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	successList(c, page)
}

// GetByID godoc
// @ID           getItem
// @Summary      Get an inventory item
// @Tags         items
// @Produce      json
// @Param        id path string true "Item ID" format(uuid)
// @Success      200 {object} APIResponse[appinv.ItemResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /items/{id} [get]
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}
	item, err := h.items.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !h.allowStore(c, item.StoreID) {
		return
	}
	h.Success(c, item)
}

// GetByKey godoc
// @ID           getItemByKey
// @Summary      Get the item of a product or variant at a location
// @Tags         items
// @Produce      json
// @Param        id         path  string true  "Location ID" format(uuid)
// @Param        product_id query string false "Product ID" format(uuid)
// @Param        variant_id query string false "Variant ID" format(uuid)
// @Success      200 {object} APIResponse[appinv.ItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations/{id}/items [get]
func (h *ItemHandler) GetByKey(c *gin.Context) {
	locationID, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}
	var q refQuery
	if !h.BindQuery(c, &q) {
		return
	}
	ref, err := q.ref()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	item, err := h.items.GetByKey(c.Request.Context(), locationID, ref)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !h.allowStore(c, item.StoreID) {
		return
	}
	h.Success(c, item)
}

// Ensure godoc
// @ID           ensureItem
// @Summary      Get or create the item of a product or variant at a location
// @Description  Creates a zero-stock item on first use. The location must be active.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id      path string            true "Location ID" format(uuid)
// @Param        request body EnsureItemRequest true "Product or variant"
// @Success      200 {object} APIResponse[appinv.ItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse "Location inactive"
// @Security     BearerAuth
// @Router       /locations/{id}/items [post]
func (h *ItemHandler) Ensure(c *gin.Context) {
	locationID, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}
	var req EnsureItemRequest
	if !h.BindJSON(c, &req) || !h.allowLocation(c, locationID) {
		return
	}
	ref, err := req.query().ref()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	item, err := h.items.GetOrCreateItem(c.Request.Context(), locationID, ref)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// SetThresholds godoc
// @ID           setItemThresholds
// @Summary      Set replenishment thresholds
// @Description  Requires minStockLevel <= reorderPoint <= maxStockLevel when a maximum is set
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id      path string               true "Location ID" format(uuid)
// @Param        request body SetThresholdsRequest true "Thresholds"
// @Success      200 {object} APIResponse[appinv.ItemResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations/{id}/items/thresholds [put]
func (h *ItemHandler) SetThresholds(c *gin.Context) {
	locationID, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}
	var req SetThresholdsRequest
	if !h.BindJSON(c, &req) || !h.allowLocation(c, locationID) {
		return
	}
	ref, err := req.query().ref()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	item, err := h.items.SetThresholds(c.Request.Context(), appinv.SetThresholdsRequest{
		LocationID:    locationID,
		Ref:           ref,
		MinStockLevel: req.MinStockLevel,
		MaxStockLevel: req.MaxStockLevel,
		ReorderPoint:  req.ReorderPoint,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Reconcile godoc
// @ID           reconcileItem
// @Summary      Compare an item with a replay of its ledger
// @Tags         items
// @Produce      json
// @Param        id         path  string true  "Location ID" format(uuid)
// @Param        product_id query string false "Product ID" format(uuid)
// @Param        variant_id query string false "Variant ID" format(uuid)
// @Success      200 {object} APIResponse[appinv.ReconcileResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations/{id}/items/reconcile [get]
func (h *ItemHandler) Reconcile(c *gin.Context) {
	locationID, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}
	var q refQuery
	if !h.BindQuery(c, &q) || !h.allowLocation(c, locationID) {
		return
	}
	ref, err := q.ref()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	result, err := h.ledger.ReconcileItem(c.Request.Context(), locationID, ref)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
