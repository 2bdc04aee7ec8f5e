package handler

import (
	"github.com/gin-gonic/gin"
	appinv "github.com/minh261002/Shopee.vn-sub000/internal/application/inventory"
)

// StatsHandler serves store summaries
type StatsHandler struct {
	BaseHandler
	stats *appinv.StatsService
}

// NewStatsHandler creates a StatsHandler
func NewStatsHandler(stats *appinv.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Get godoc
// @ID           getStoreStats
// @Summary      Get store inventory statistics
// @Description  Location and product counts, stock value, low and out of stock items, and movements in the recent window
// @Tags         stats
// @Produce      json
// @Param        storeId path string true "Store ID" format(uuid)
// @Success      200 {object} APIResponse[appinv.StoreStats]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /stores/{storeId}/stats [get]
func (h *StatsHandler) Get(c *gin.Context) {
	storeID, ok := h.PathUUID(c, "storeId")
	if !ok {
		return
	}
	stats, err := h.stats.GetStats(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
