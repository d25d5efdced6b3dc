// Package pricing computes every money figure the storefront displays.
//
// All surfaces (catalog cards, cart, checkout, HTTP) go through one Engine so
// that rounding and composition order are identical everywhere.
package pricing

import (
	"math/big"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// Engine is stateless apart from its configuration and safe for concurrent use.
type Engine struct {
	cfg       Config
	formatter *money.Formatter
	one       *big.Rat
}

// NewEngine validates cfg and builds an Engine. A nil formatter defaults to BRL.
func NewEngine(cfg Config, formatter *money.Formatter) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if formatter == nil {
		formatter = money.NewBRLFormatter()
	}
	return &Engine{cfg: cfg, formatter: formatter, one: big.NewRat(1, 1)}, nil
}

// Config returns the rules the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// CashDiscountPrice is the amount payable by Pix: amount × (1 − rate), rounded to cents.
func (e *Engine) CashDiscountPrice(amount *money.Money) *money.Money {
	factor := new(big.Rat).Sub(e.one, e.cfg.CashDiscountRate)
	return amount.MultiplyByRat(factor).RoundCents()
}

// CashSavings is what the buyer saves by paying with Pix.
func (e *Engine) CashSavings(amount *money.Money) *money.Money {
	return amount.RoundCents().Subtract(e.CashDiscountPrice(amount))
}

// Installments is an interest-free payment plan.
type Installments struct {
	Count int          `json:"count"`
	Value *money.Money `json:"value"`
}

// InstallmentPlan picks the largest installment count, up to the configured
// maximum, whose installment is not below the configured floor. A single
// installment is always allowed.
func (e *Engine) InstallmentPlan(amount *money.Money) Installments {
	if !amount.IsPositive() {
		return Installments{Count: 1, Value: amount.RoundCents()}
	}

	count := e.cfg.MaxInstallments
	for count > 1 && e.installment(amount, count).LessThan(e.cfg.MinInstallmentValue) {
		count--
	}
	return Installments{Count: count, Value: e.installment(amount, count).RoundCents()}
}

func (e *Engine) installment(amount *money.Money, count int) *money.Money {
	return amount.MultiplyByRat(big.NewRat(1, int64(count)))
}
