package dto

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeDuplicateCode, http.StatusConflict},
		{ErrCodeLocationInUse, http.StatusConflict},
		{ErrCodeDuplicateRequest, http.StatusConflict},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeNegativeStock, http.StatusUnprocessableEntity},
		{ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{ErrCodeInvalidTransferTarget, http.StatusUnprocessableEntity},
		{ErrCodeInvalidQuantity, http.StatusBadRequest},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeNegativeStock, NormalizeErrorCode("NEGATIVE_STOCK"))
	assert.Equal(t, ErrCodeValidation, NormalizeErrorCode(ErrCodeValidation))
	assert.Equal(t, ErrCodeInternal, NormalizeErrorCode(""))
}

// Every ledger error must reach the client with a deliberate status code.
func TestDomainErrorsHaveStatus(t *testing.T) {
	domainErrors := []*shared.DomainError{
		shared.ErrNotFound,
		shared.ErrInvalidInput,
		shared.ErrConcurrencyConflict,
		inventory.ErrDuplicateCode,
		inventory.ErrLocationInUse,
		inventory.ErrLocationInactive,
		inventory.ErrNegativeStock,
		inventory.ErrInsufficientAvailable,
		inventory.ErrInsufficientStock,
		inventory.ErrInvalidTransferTarget,
		inventory.ErrInvalidQuantity,
		inventory.ErrInvalidMovementType,
		inventory.ErrInvalidProductRef,
		inventory.ErrInvalidThresholds,
		inventory.ErrInvalidCost,
		inventory.ErrInvalidLocation,
		inventory.ErrDefaultLocationInactive,
	}
	for _, de := range domainErrors {
		t.Run(de.Code, func(t *testing.T) {
			code := NormalizeErrorCode(de.Code)
			_, ok := ErrorCodeHTTPStatus[code]
			assert.True(t, ok, "%s has no HTTP status", code)
		})
	}
}

func TestErrorCodeFormat(t *testing.T) {
	for code := range ErrorCodeHTTPStatus {
		assert.True(t, strings.HasPrefix(code, "ERR_"), code)
	}
}

func TestNewErrorResponse(t *testing.T) {
	before := time.Now()
	resp := NewErrorResponse("NEGATIVE_STOCK", "Quantity would fall below zero")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNegativeStock, resp.Error.Code)
	assert.Equal(t, "Quantity would fall below zero", resp.Error.Message)
	assert.False(t, resp.Error.Timestamp.Before(before))
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "quantity", Message: "Must be greater than 0"},
		{Field: "type", Message: "Unknown movement type"},
	}
	resp := NewValidationErrorResponse("Request validation failed", "req-789", details)

	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-789", resp.Error.RequestID)
	assert.Equal(t, details, resp.Error.Details)
}

func TestErrorResponseJSON(t *testing.T) {
	data, err := json.Marshal(NewErrorResponseWithRequestID(ErrCodeNotFound, "Location not found", "req-1"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.NotContains(t, decoded, "data")

	errObj := decoded["error"].(map[string]any)
	assert.Equal(t, ErrCodeNotFound, errObj["code"])
	assert.Equal(t, "req-1", errObj["request_id"])
	assert.NotContains(t, errObj, "details")
}
