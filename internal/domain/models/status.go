package models

import "fmt"

// ProductStatus is the availability shown on the storefront.
type ProductStatus string

const (
	StatusInStock    ProductStatus = "in_stock"
	StatusOutOfStock ProductStatus = "out_of_stock"
	StatusComingSoon ProductStatus = "coming_soon"
)

// ProductStatuses lists every accepted status value.
var ProductStatuses = []ProductStatus{StatusInStock, StatusOutOfStock, StatusComingSoon}

// Valid reports whether s is one of the known statuses.
func (s ProductStatus) Valid() bool {
	switch s {
	case StatusInStock, StatusOutOfStock, StatusComingSoon:
		return true
	default:
		return false
	}
}

// DeriveStatus maps an aggregate quantity to its availability.
func DeriveStatus(quantity int) ProductStatus {
	if quantity > 0 {
		return StatusInStock
	}
	return StatusOutOfStock
}

// StatusSource tells where a resolved status came from.
type StatusSource string

const (
	StatusFromQuantity StatusSource = "quantity"
	StatusFromManual   StatusSource = "manual"
)

// StatusDecision is the outcome of resolving an admin edit.
type StatusDecision struct {
	Status ProductStatus
	Source StatusSource
}

// ResolveStatus decides the stored status for an admin edit. A positive quantity
// always wins; a manual choice is honoured only when the quantity is zero.
func ResolveStatus(quantity int, requested ProductStatus) (StatusDecision, error) {
	if quantity < 0 {
		return StatusDecision{}, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	if requested != "" && !requested.Valid() {
		return StatusDecision{}, fmt.Errorf("%w: unknown product status %q", ErrValidation, requested)
	}

	if quantity > 0 {
		return StatusDecision{Status: StatusInStock, Source: StatusFromQuantity}, nil
	}

	switch requested {
	case StatusComingSoon, StatusOutOfStock:
		return StatusDecision{Status: requested, Source: StatusFromManual}, nil
	default:
		return StatusDecision{Status: StatusOutOfStock, Source: StatusFromQuantity}, nil
	}
}
