package inventory

import "errors"

// Domain errors for inventory operations

var (
	// Entity validation errors
	ErrEmptyName          = errors.New("item name must not be empty")
	ErrNegativeQuantity   = errors.New("item quantity must not be negative")
	ErrQuantityNotNumeric = errors.New("item quantity must be a base-10 integer")

	// Lookup errors
	ErrItemNotFound = errors.New("item not found")
)
