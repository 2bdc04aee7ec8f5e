package handler

import (
	"github.com/minh261002/Shopee.vn-sub000/internal/interfaces/http/dto"
)

// APIResponse documents the success envelope with a typed data field
// @Description Standard API response wrapper
type APIResponse[T any] struct {
	Success bool `json:"success" example:"true"`
	Data    T    `json:"data"`
}

// ListResponse documents a paginated list envelope
// @Description Paginated list wrapper
type ListResponse[T any] struct {
	Success bool            `json:"success" example:"true"`
	Data    dto.ListData[T] `json:"data"`
}

// ErrorResponse documents the error envelope
// @Description Standard error response
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error"`
}
