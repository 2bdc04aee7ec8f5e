package handler

import (
	"github.com/minh261002/Shopee.vn-sub000/internal/interfaces/http/middleware"
	"github.com/minh261002/Shopee.vn-sub000/internal/interfaces/http/router"
)

// Handlers are the handlers mounted under the API prefix
type Handlers struct {
	Locations    *LocationHandler
	Items        *ItemHandler
	Movements    *MovementHandler
	Reservations *ReservationHandler
	Stats        *StatsHandler
	System       *SystemHandler
}

// DomainGroups lays out the ledger API. Store-scoped routes check the
// caller's store grants before the handler runs.
func (hs Handlers) DomainGroups() []*router.DomainGroup {
	stores := router.NewDomainGroup("stores", "/stores/:storeId").
		Use(middleware.RequireStoreAccess("storeId"))
	stores.POST("/locations", "createLocation", hs.Locations.Create)
	stores.GET("/locations", "listLocations", hs.Locations.List)
	stores.GET("/items", "listItems", hs.Items.List)
	stores.GET("/stats", "getStoreStats", hs.Stats.Get)

	locations := router.NewDomainGroup("locations", "/locations")
	locations.GET("/:id", "getLocation", hs.Locations.GetByID)
	locations.PUT("/:id", "updateLocation", hs.Locations.Update)
	locations.DELETE("/:id", "deleteLocation", hs.Locations.Delete)
	locations.POST("/:id/deactivate", "deactivateLocation", hs.Locations.Deactivate)
	locations.POST("/:id/activate", "activateLocation", hs.Locations.Activate)
	locations.POST("/:id/default", "setDefaultLocation", hs.Locations.SetDefault)
	locations.Group("location-items", "/:id/items").
		GET("", "getItemByKey", hs.Items.GetByKey).
		POST("", "ensureItem", hs.Items.Ensure).
		PUT("/thresholds", "setItemThresholds", hs.Items.SetThresholds).
		GET("/reconcile", "reconcileItem", hs.Items.Reconcile)

	items := router.NewDomainGroup("items", "/items")
	items.GET("/:id", "getItem", hs.Items.GetByID)

	movements := router.NewDomainGroup("movements", "/movements")
	movements.POST("", "recordMovement", hs.Movements.Record)
	movements.GET("", "listMovements", hs.Movements.List)
	movements.GET("/:id", "getMovement", hs.Movements.GetByID)

	reservations := router.NewDomainGroup("reservations", "/reservations")
	reservations.POST("/reserve", "reserveStock", hs.Reservations.Reserve)
	reservations.POST("/release", "releaseStock", hs.Reservations.Release)
	reservations.POST("/commit", "commitReservation", hs.Reservations.Commit)

	system := router.NewDomainGroup("system", "/system")
	system.GET("/info", "systemInfo", hs.System.Info)

	return []*router.DomainGroup{stores, locations, items, movements, reservations, system}
}

// Register adds every domain group to r
func (hs Handlers) Register(r *router.Router) {
	for _, group := range hs.DomainGroups() {
		r.Register(group)
	}
}
