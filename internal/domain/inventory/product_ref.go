package inventory

import (
	"fmt"

	"github.com/google/uuid"
)

// RefKind tags what a ProductRef points at.
type RefKind string

const (
	RefKindProduct RefKind = "PRODUCT"
	RefKindVariant RefKind = "VARIANT"
)

// IsValid returns true if the kind is known
func (k RefKind) IsValid() bool {
	return k == RefKindProduct || k == RefKindVariant
}

// ProductRef identifies either a product or one of its variants, never both.
// The catalog owns both; the ledger only stores the reference.
type ProductRef struct {
	Kind RefKind
	ID   uuid.UUID
}

// ProductOf references a product without variants.
func ProductOf(id uuid.UUID) ProductRef {
	return ProductRef{Kind: RefKindProduct, ID: id}
}

// VariantOf references a product variant.
func VariantOf(id uuid.UUID) ProductRef {
	return ProductRef{Kind: RefKindVariant, ID: id}
}

// NewProductRef builds a reference from the optional product/variant pair
// used on the wire. Exactly one of them must be set.
func NewProductRef(productID, variantID *uuid.UUID) (ProductRef, error) {
	hasProduct := productID != nil && *productID != uuid.Nil
	hasVariant := variantID != nil && *variantID != uuid.Nil
	switch {
	case hasProduct && !hasVariant:
		return ProductOf(*productID), nil
	case hasVariant && !hasProduct:
		return VariantOf(*variantID), nil
	default:
		return ProductRef{}, ErrInvalidProductRef
	}
}

// Validate checks the reference is well formed
func (r ProductRef) Validate() error {
	if !r.Kind.IsValid() || r.ID == uuid.Nil {
		return ErrInvalidProductRef
	}
	return nil
}

// ProductID returns the id when the reference is a product
func (r ProductRef) ProductID() *uuid.UUID {
	if r.Kind != RefKindProduct {
		return nil
	}
	id := r.ID
	return &id
}

// VariantID returns the id when the reference is a variant
func (r ProductRef) VariantID() *uuid.UUID {
	if r.Kind != RefKindVariant {
		return nil
	}
	id := r.ID
	return &id
}

func (r ProductRef) String() string {
	return fmt.Sprintf("%s:%s", r.Kind, r.ID)
}
