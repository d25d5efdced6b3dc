package contracts

import (
	"context"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
)

// CartReader is the part of the cart service a checkout reads from.
type CartReader interface {
	Get(ctx context.Context, cartID string) (cart.Cart, error)
}

// CartClearer empties a cart once its order is placed.
type CartClearer interface {
	CartReader
	Clear(ctx context.Context, cartID string) (cart.Cart, error)
}
