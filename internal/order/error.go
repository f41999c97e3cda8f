package order

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrMissingAddress  = errors.New("shipping address line 1 is required")
	ErrUnknownUser     = errors.New("user not found")
	ErrUnknownProduct  = errors.New("unknown product")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrPartialCascade  = errors.New("order deleted but some line items were already missing")
)
