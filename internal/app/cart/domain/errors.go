package domain

import "errors"

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOutOfStock    = errors.New("product is out of stock")
	ErrLineNotFound  = errors.New("product is not in the cart")
	ErrInvalidCartID = errors.New("cart id cannot be empty")
)
