package inventory

import "github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"

// Ledger errors. Every one of them is raised before any row is written,
// so a failed call leaves locations, items and movements untouched.
var (
	ErrDuplicateCode           = shared.NewDomainError("DUPLICATE_CODE", "Location code is already used in this store")
	ErrLocationInUse           = shared.NewDomainError("LOCATION_IN_USE", "Location still holds stock or history")
	ErrLocationInactive        = shared.NewDomainError("LOCATION_INACTIVE", "Location is not active")
	ErrNegativeStock           = shared.NewDomainError("NEGATIVE_STOCK", "Quantity would fall below zero or below the reserved quantity")
	ErrInsufficientAvailable   = shared.NewDomainError("INSUFFICIENT_AVAILABLE", "Reserved quantity must stay between zero and the physical quantity")
	ErrInsufficientStock       = shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient available stock")
	ErrInvalidTransferTarget   = shared.NewDomainError("INVALID_TRANSFER_TARGET", "Transfer destination is missing, inactive or equal to the source")
	ErrInvalidQuantity         = shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	ErrInvalidMovementType     = shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Unknown movement type")
	ErrInvalidProductRef       = shared.NewDomainError("INVALID_PRODUCT_REF", "Exactly one of product or variant must be referenced")
	ErrInvalidThresholds       = shared.NewDomainError("INVALID_THRESHOLDS", "Stock thresholds are inconsistent")
	ErrInvalidCost             = shared.NewDomainError("INVALID_COST", "Unit cost must be a non-negative amount with at most 4 decimal places")
	ErrInvalidLocation         = shared.NewDomainError("INVALID_LOCATION", "Location attributes are invalid")
	ErrDefaultLocationInactive = shared.NewDomainError("DEFAULT_LOCATION_INACTIVE", "An inactive location cannot be the default")
)
