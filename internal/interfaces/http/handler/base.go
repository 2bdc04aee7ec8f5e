// Package handler serves the inventory ledger over HTTP.
package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/logger"
	"github.com/minh261002/Shopee.vn-sub000/internal/interfaces/http/dto"
	"github.com/minh261002/Shopee.vn-sub000/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error envelope; the status follows the code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	code = dto.NormalizeErrorCode(code)
	c.AbortWithStatusJSON(dto.GetHTTPStatus(code),
		dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeBadRequest, message)
}

// Forbidden sends a 403 response
func (h *BaseHandler) Forbidden(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeForbidden, message)
}

// HandleError maps domain errors to their status and code. Anything else
// is logged and reported as an internal error without details.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, domainErr.Code, domainErr.Message)
		return
	}
	logger.GetGinLogger(c).Error("Request failed",
		zap.String("route", c.FullPath()),
		zap.Error(err),
	)
	h.Error(c, dto.ErrCodeInternal, "An unexpected error occurred")
}

// BindJSON decodes the body into req and reports binding failures. It
// returns false when a response was already sent.
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// BindQuery decodes query parameters into req
func (h *BaseHandler) BindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// PathUUID parses the named path parameter
func (h *BaseHandler) PathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+": must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// actor is the caller recorded as createdBy on ledger rows
func actor(c *gin.Context) string {
	return middleware.GetActorID(c)
}

// canAccessStore reports whether the caller's token grants storeID. Callers
// without a token are unrestricted.
func canAccessStore(c *gin.Context, storeID uuid.UUID) bool {
	claims := middleware.GetClaims(c)
	return claims == nil || claims.CanAccessStore(storeID)
}

// restricted reports whether the caller's token names its stores
func restricted(c *gin.Context) bool {
	claims := middleware.GetClaims(c)
	return claims != nil && len(claims.StoreIDs) > 0
}

// optionalUUID parses s; an empty string yields nil. Values reaching this
// point have passed the uuid binding tag.
func optionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

// refQuery addresses an inventory item in query strings
type refQuery struct {
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
	VariantID string `form:"variant_id" binding:"omitempty,uuid"`
}

func (q refQuery) ref() (inventory.ProductRef, error) {
	return inventory.NewProductRef(optionalUUID(q.ProductID), optionalUUID(q.VariantID))
}

// parseTime accepts RFC 3339 timestamps and plain dates
func parseTime(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, shared.ErrInvalidInput.WithMessage("Invalid time %q: use RFC 3339 or YYYY-MM-DD", s)
	}
	return &t, nil
}

// successList sends one page of results
func successList[T any](c *gin.Context, page shared.Paginated[T]) {
	c.JSON(http.StatusOK, dto.NewListResponse(page))
}
