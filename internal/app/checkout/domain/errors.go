package domain

import "errors"

// Checkout errors
var (
	ErrInvalidInstallments = errors.New("installment count not available for this total")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidOrderID      = errors.New("order id cannot be empty")
)

// Persistence errors
var ErrAmountOverflow = errors.New("amount does not fit in int64 cents")
