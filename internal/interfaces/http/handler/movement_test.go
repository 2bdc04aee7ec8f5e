package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	appinv "github.com/minh261002/Shopee.vn-sub000/internal/application/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/minh261002/Shopee.vn-sub000/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovementHandler_RecordInbound(t *testing.T) {
	s := newServer(t)
	loc := s.createLocation(s.storeID, "MAIN", false)
	product := uuid.New()

	rows := s.record(map[string]any{
		"locationId": loc.ID, "productId": product, "type": "IN", "quantity": 10,
		"unitCost": "100", "referenceNumber": "PO-1",
	})
	require.Len(t, rows, 1)
	assert.Equal(t, inventory.MovementTypeIn, rows[0].Type)
	assert.Equal(t, int64(0), rows[0].QuantityBefore)
	assert.Equal(t, int64(10), rows[0].QuantityAfter)
	assert.Equal(t, s.storeID, rows[0].StoreID)
	assert.Equal(t, "PO-1", rows[0].ReferenceNumber)

	s.record(map[string]any{
		"locationId": loc.ID, "productId": product, "type": "IN", "quantity": 10, "unitCost": "200",
	})

	w := s.do(http.MethodGet, "/locations/"+loc.ID.String()+"/items?product_id="+product.String(), nil)
	item := testutil.RequireData[appinv.ItemResponse](t, w, http.StatusOK)
	assert.Equal(t, int64(20), item.Quantity)
	assert.Equal(t, "150.0000", item.AvgCostPrice.StringFixed(4))
	assert.Equal(t, "3000.0000", item.TotalValue.StringFixed(4))
}

func TestMovementHandler_RecordRejections(t *testing.T) {
	s := newServer(t)
	loc := s.createLocation(s.storeID, "MAIN", false)
	product := uuid.New()
	s.record(map[string]any{"locationId": loc.ID, "productId": product, "type": "IN", "quantity": 5})

	tests := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{
			name:   "overdraw",
			body:   map[string]any{"locationId": loc.ID, "productId": product, "type": "OUT", "quantity": 6},
			status: http.StatusUnprocessableEntity,
			code:   "ERR_NEGATIVE_STOCK",
		},
		{
			name:   "adjustment below zero",
			body:   map[string]any{"locationId": loc.ID, "productId": product, "type": "ADJUSTMENT", "signedDelta": -6},
			status: http.StatusUnprocessableEntity,
			code:   "ERR_NEGATIVE_STOCK",
		},
		{
			name:   "unknown type",
			body:   map[string]any{"locationId": loc.ID, "productId": product, "type": "LOST", "quantity": 1},
			status: http.StatusBadRequest,
			code:   "ERR_VALIDATION",
		},
		{
			name:   "zero quantity",
			body:   map[string]any{"locationId": loc.ID, "productId": product, "type": "OUT", "quantity": 0},
			status: http.StatusBadRequest,
			code:   "ERR_INVALID_QUANTITY",
		},
		{
			name:   "negative cost",
			body:   map[string]any{"locationId": loc.ID, "productId": product, "type": "IN", "quantity": 1, "unitCost": "-1"},
			status: http.StatusBadRequest,
			code:   "ERR_INVALID_COST",
		},
		{
			name:   "cost with five decimal places",
			body:   map[string]any{"locationId": loc.ID, "productId": product, "type": "IN", "quantity": 1, "unitCost": "0.00005"},
			status: http.StatusBadRequest,
			code:   "ERR_INVALID_COST",
		},
		{
			name:   "both product and variant",
			body:   map[string]any{"locationId": loc.ID, "productId": product, "variantId": uuid.New(), "type": "IN", "quantity": 1},
			status: http.StatusBadRequest,
			code:   "ERR_INVALID_PRODUCT_REF",
		},
		{
			name:   "transfer to itself",
			body:   map[string]any{"locationId": loc.ID, "productId": product, "type": "TRANSFER", "quantity": 1, "transferToLocationId": loc.ID},
			status: http.StatusUnprocessableEntity,
			code:   "ERR_INVALID_TRANSFER_TARGET",
		},
		{
			name:   "unknown location",
			body:   map[string]any{"locationId": uuid.New(), "productId": product, "type": "IN", "quantity": 1},
			status: http.StatusNotFound,
			code:   "ERR_NOT_FOUND",
		},
		{
			name:   "malformed location id",
			body:   map[string]any{"locationId": "abc", "productId": product, "type": "IN", "quantity": 1},
			status: http.StatusBadRequest,
			code:   "ERR_VALIDATION",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertError(t, s.do(http.MethodPost, "/movements", tt.body), tt.status, tt.code)
		})
	}

	w := s.do(http.MethodGet, "/locations/"+loc.ID.String()+"/items?product_id="+product.String(), nil)
	item := testutil.RequireData[appinv.ItemResponse](t, w, http.StatusOK)
	assert.Equal(t, int64(5), item.Quantity, "rejected movements leave the item untouched")
}

func TestMovementHandler_TransferAndList(t *testing.T) {
	s := newServer(t)
	a := s.createLocation(s.storeID, "A", true)
	b := s.createLocation(s.storeID, "B", false)
	variant := uuid.New()
	s.record(map[string]any{"locationId": a.ID, "variantId": variant, "type": "IN", "quantity": 8, "unitCost": "12.5"})

	rows := s.record(map[string]any{
		"locationId": a.ID, "variantId": variant, "type": "TRANSFER", "quantity": 3,
		"transferToLocationId": b.ID, "referenceNumber": "TR-1",
	})
	require.Len(t, rows, 2)
	assert.Equal(t, int64(-3), rows[0].Effect)
	assert.Equal(t, int64(3), rows[1].Effect)
	assert.Equal(t, rows[0].CorrelationID, rows[1].CorrelationID)

	w := s.do(http.MethodGet, "/movements?correlation_id="+rows[0].CorrelationID.String(), nil)
	page := testutil.RequireData[testutil.Page[appinv.MovementResponse]](t, w, http.StatusOK)
	assert.Equal(t, int64(2), page.Pagination.Total)

	w = s.do(http.MethodGet, "/movements?store_id="+s.storeID.String()+"&order=asc", nil)
	page = testutil.RequireData[testutil.Page[appinv.MovementResponse]](t, w, http.StatusOK)
	require.Len(t, page.Items, 3)
	assert.Equal(t, inventory.MovementTypeIn, page.Items[0].Type)

	w = s.do(http.MethodGet, "/movements?type=TRANSFER&location_id="+b.ID.String(), nil)
	page = testutil.RequireData[testutil.Page[appinv.MovementResponse]](t, w, http.StatusOK)
	require.Len(t, page.Items, 1)
	assert.Equal(t, inventory.TransferLegIn, page.Items[0].TransferLeg)

	w = s.do(http.MethodGet, "/movements?from=2000-01-01&to=not-a-date", nil)
	testutil.AssertError(t, w, http.StatusBadRequest, "ERR_INVALID_INPUT")

	w = s.do(http.MethodGet, "/movements?order=sideways", nil)
	testutil.AssertError(t, w, http.StatusBadRequest, "ERR_VALIDATION")

	got := testutil.RequireData[appinv.MovementResponse](t, s.do(http.MethodGet, "/movements/"+rows[1].ID.String(), nil), http.StatusOK)
	assert.Equal(t, b.ID, got.LocationID)

	testutil.AssertError(t, s.do(http.MethodGet, "/movements/"+uuid.NewString(), nil), http.StatusNotFound, "ERR_NOT_FOUND")
}
