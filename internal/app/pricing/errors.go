package pricing

import "errors"

var (
	// Coupon errors
	ErrInvalidCoupon  = errors.New("invalid coupon")
	ErrCouponRequired = errors.New("coupon code cannot be empty")

	// Shipping errors
	ErrInvalidPostalCode     = errors.New("invalid postal code")
	ErrUnknownShippingMethod = errors.New("unknown shipping method")
	ErrPickupUnavailable     = errors.New("store pickup is not available")

	// Payment errors
	ErrUnknownPaymentMethod = errors.New("unknown payment method")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid pricing configuration")
)
