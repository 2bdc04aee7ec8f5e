package dto

import (
	"net/http"
	"strings"
)

// Error codes returned in the error envelope. Format: ERR_<DESCRIPTION>

// General error codes
const (
	ErrCodeInternal    = "ERR_INTERNAL"
	ErrCodeUnavailable = "ERR_UNAVAILABLE"
)

// Input error codes
const (
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeDuplicateRequest    = "ERR_DUPLICATE_REQUEST"
	ErrCodeDuplicateCode       = "ERR_DUPLICATE_CODE"
	ErrCodeLocationInUse       = "ERR_LOCATION_IN_USE"
)

// Ledger rule error codes
const (
	ErrCodeInvalidState            = "ERR_INVALID_STATE"
	ErrCodeNegativeStock           = "ERR_NEGATIVE_STOCK"
	ErrCodeInsufficientAvailable   = "ERR_INSUFFICIENT_AVAILABLE"
	ErrCodeInsufficientStock       = "ERR_INSUFFICIENT_STOCK"
	ErrCodeInvalidTransferTarget   = "ERR_INVALID_TRANSFER_TARGET"
	ErrCodeLocationInactive        = "ERR_LOCATION_INACTIVE"
	ErrCodeDefaultLocationInactive = "ERR_DEFAULT_LOCATION_INACTIVE"
)

// Ledger input error codes
const (
	ErrCodeInvalidQuantity     = "ERR_INVALID_QUANTITY"
	ErrCodeInvalidMovementType = "ERR_INVALID_MOVEMENT_TYPE"
	ErrCodeInvalidProductRef   = "ERR_INVALID_PRODUCT_REF"
	ErrCodeInvalidThresholds   = "ERR_INVALID_THRESHOLDS"
	ErrCodeInvalidCost         = "ERR_INVALID_COST"
	ErrCodeInvalidLocation     = "ERR_INVALID_LOCATION"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeUnavailable: http.StatusServiceUnavailable,

	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeDuplicateRequest:    http.StatusConflict,
	ErrCodeDuplicateCode:       http.StatusConflict,
	ErrCodeLocationInUse:       http.StatusConflict,

	ErrCodeInvalidState:            http.StatusUnprocessableEntity,
	ErrCodeNegativeStock:           http.StatusUnprocessableEntity,
	ErrCodeInsufficientAvailable:   http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock:       http.StatusUnprocessableEntity,
	ErrCodeInvalidTransferTarget:   http.StatusUnprocessableEntity,
	ErrCodeLocationInactive:        http.StatusUnprocessableEntity,
	ErrCodeDefaultLocationInactive: http.StatusUnprocessableEntity,

	ErrCodeInvalidQuantity:     http.StatusBadRequest,
	ErrCodeInvalidMovementType: http.StatusBadRequest,
	ErrCodeInvalidProductRef:   http.StatusBadRequest,
	ErrCodeInvalidThresholds:   http.StatusBadRequest,
	ErrCodeInvalidCost:         http.StatusBadRequest,
	ErrCodeInvalidLocation:     http.StatusBadRequest,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes answer 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// NormalizeErrorCode turns a domain error code such as NEGATIVE_STOCK into
// its ERR_ form. Codes that already carry the prefix are returned as-is.
func NormalizeErrorCode(code string) string {
	if code == "" {
		return ErrCodeInternal
	}
	if strings.HasPrefix(code, "ERR_") {
		return code
	}
	return "ERR_" + code
}
