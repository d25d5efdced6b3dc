package pricing

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// Config holds the storefront's commercial rules. It is read-only once an
// Engine has been built from it.
type Config struct {
	// CashDiscountRate is the Pix discount as a fraction, e.g. 1/10.
	CashDiscountRate      *big.Rat
	MaxInstallments       int
	MinInstallmentValue   *money.Money
	FreeShippingThreshold *money.Money
	StandardRate          *money.Money
	ExpressRate           *money.Money
	StandardDeliveryDays  string
	ExpressDeliveryDays   string
	PickupDeliveryDays    string
	PickupAvailable       bool
	// Coupons maps an upper-case code to its discount fraction.
	Coupons map[string]*big.Rat
}

// DefaultConfig returns the storefront's launch rules: 10% off with Pix, up to
// 6 interest-free installments of at least R$ 50, free shipping from R$ 299.
func DefaultConfig() Config {
	return Config{
		CashDiscountRate:      big.NewRat(10, 100),
		MaxInstallments:       6,
		MinInstallmentValue:   money.FromUnits(50),
		FreeShippingThreshold: money.FromUnits(299),
		StandardRate:          money.MustParse("19.90"),
		ExpressRate:           money.MustParse("29.90"),
		StandardDeliveryDays:  "3-5 dias úteis",
		ExpressDeliveryDays:   "1-2 dias úteis",
		PickupDeliveryDays:    "1 dia útil",
		PickupAvailable:       true,
		Coupons: map[string]*big.Rat{
			"PRIMEIRA10": big.NewRat(10, 100),
			"BARATO5":    big.NewRat(5, 100),
		},
	}
}

// Validate checks that every rule is inside its domain.
func (c Config) Validate() error {
	switch {
	case c.CashDiscountRate == nil || c.CashDiscountRate.Sign() < 0 || c.CashDiscountRate.Cmp(big.NewRat(1, 1)) >= 0:
		return fmt.Errorf("%w: cash discount rate must be in [0, 1)", ErrInvalidConfig)
	case c.MaxInstallments < 1:
		return fmt.Errorf("%w: max installments must be at least 1", ErrInvalidConfig)
	case !nonNegative(c.MinInstallmentValue):
		return fmt.Errorf("%w: min installment value must not be negative", ErrInvalidConfig)
	case !nonNegative(c.FreeShippingThreshold):
		return fmt.Errorf("%w: free shipping threshold must not be negative", ErrInvalidConfig)
	case !nonNegative(c.StandardRate) || !nonNegative(c.ExpressRate):
		return fmt.Errorf("%w: shipping rates must not be negative", ErrInvalidConfig)
	}
	for code, rate := range c.Coupons {
		if strings.TrimSpace(code) == "" || code != strings.ToUpper(code) {
			return fmt.Errorf("%w: coupon code %q must be upper-case and non-empty", ErrInvalidConfig, code)
		}
		if rate == nil || rate.Sign() <= 0 || rate.Cmp(big.NewRat(1, 1)) > 0 {
			return fmt.Errorf("%w: coupon %s rate must be in (0, 1]", ErrInvalidConfig, code)
		}
	}
	return nil
}

func nonNegative(m *money.Money) bool {
	return m != nil && !m.IsNegative()
}
