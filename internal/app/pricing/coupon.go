package pricing

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// CouponDiscount is the effect of a valid coupon on a subtotal.
type CouponDiscount struct {
	Code     string       `json:"code"`
	Rate     *big.Rat     `json:"-"`
	Percent  string       `json:"percent"`
	Discount *money.Money `json:"discount"`
}

// CouponAdjustment looks the code up case-insensitively and returns subtotal × rate.
// An unknown code is an error, never a silent zero discount.
func (e *Engine) CouponAdjustment(subtotal *money.Money, code string) (CouponDiscount, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return CouponDiscount{}, ErrCouponRequired
	}

	rate, ok := e.cfg.Coupons[normalized]
	if !ok {
		return CouponDiscount{}, fmt.Errorf("%w: %s", ErrInvalidCoupon, normalized)
	}

	pct := new(big.Rat).Mul(rate, big.NewRat(100, 1))
	return CouponDiscount{
		Code:     normalized,
		Rate:     new(big.Rat).Set(rate),
		Percent:  money.FromRat(pct).DecimalString(),
		Discount: subtotal.MultiplyByRat(rate).RoundCents(),
	}, nil
}
