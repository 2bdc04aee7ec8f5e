package handler_test

import (
	"testing"

	"github.com/minh261002/Shopee.vn-sub000/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
)

func TestHandlers_DomainGroups(t *testing.T) {
	s := newServer(t)
	routes := map[string]bool{}
	for _, r := range s.engine.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"POST /api/v1/stores/:storeId/locations",
		"GET /api/v1/stores/:storeId/locations",
		"GET /api/v1/stores/:storeId/items",
		"GET /api/v1/stores/:storeId/stats",
		"GET /api/v1/locations/:id",
		"PUT /api/v1/locations/:id",
		"DELETE /api/v1/locations/:id",
		"POST /api/v1/locations/:id/deactivate",
		"POST /api/v1/locations/:id/activate",
		"POST /api/v1/locations/:id/default",
		"GET /api/v1/locations/:id/items",
		"POST /api/v1/locations/:id/items",
		"PUT /api/v1/locations/:id/items/thresholds",
		"GET /api/v1/locations/:id/items/reconcile",
		"GET /api/v1/items/:id",
		"POST /api/v1/movements",
		"GET /api/v1/movements",
		"GET /api/v1/movements/:id",
		"POST /api/v1/reservations/reserve",
		"POST /api/v1/reservations/release",
		"POST /api/v1/reservations/commit",
		"GET /api/v1/system/info",
		"GET /health",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}

	var ops []string
	for _, g := range (handler.Handlers{}).DomainGroups() {
		for _, r := range g.Routes() {
			ops = append(ops, r.Operation)
		}
	}
	assert.Contains(t, ops, "recordMovement")
	assert.Contains(t, ops, "reconcileItem")
	assert.Len(t, ops, 22)
}
