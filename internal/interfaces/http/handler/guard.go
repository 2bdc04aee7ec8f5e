package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appinv "github.com/minh261002/Shopee.vn-sub000/internal/application/inventory"
)

// storeGuard enforces a token's store grants on routes that name a
// location instead of a store. Unrestricted callers skip the lookup.
type storeGuard struct {
	BaseHandler
	locations *appinv.LocationService
}

// allowLocation reports whether the caller may act on the location. It
// sends the error response itself when it returns false.
func (g *storeGuard) allowLocation(c *gin.Context, locationID uuid.UUID) bool {
	if !restricted(c) {
		return true
	}
	loc, err := g.locations.GetByID(c.Request.Context(), locationID)
	if err != nil {
		g.HandleError(c, err)
		return false
	}
	return g.allowStore(c, loc.StoreID)
}

// allowStore reports whether the caller may act on storeID
func (g *storeGuard) allowStore(c *gin.Context, storeID uuid.UUID) bool {
	if !canAccessStore(c, storeID) {
		g.Forbidden(c, "Token does not grant access to this store")
		return false
	}
	return true
}
