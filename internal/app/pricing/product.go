package pricing

import (
	"math/big"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// ProductPrice is everything a product card shows about price.
type ProductPrice struct {
	Price           *money.Money `json:"price"`
	OriginalPrice   *money.Money `json:"originalPrice,omitempty"`
	DiscountPercent int          `json:"discountPercent"`
	DiscountAmount  *money.Money `json:"discountAmount"`
	CashPrice       *money.Money `json:"cashPrice"`
	CashSavings     *money.Money `json:"cashSavings"`
	Installments    Installments `json:"installments"`
	Labels          PriceLabels  `json:"labels"`
}

// PriceLabels are the formatted strings of a ProductPrice.
type PriceLabels struct {
	Price         string `json:"price"`
	OriginalPrice string `json:"originalPrice,omitempty"`
	CashPrice     string `json:"cashPrice"`
	Installments  string `json:"installments"`
}

// ProductPricing prices a single product at list price. original may be nil.
// The discount percent is rounded to the nearest whole number.
func (e *Engine) ProductPricing(price, original *money.Money) ProductPrice {
	p := ProductPrice{
		Price:          price.RoundCents(),
		DiscountAmount: money.Zero(),
		CashPrice:      e.CashDiscountPrice(price),
		CashSavings:    e.CashSavings(price),
		Installments:   e.InstallmentPlan(price),
	}

	if original != nil && original.GreaterThan(price) {
		p.OriginalPrice = original.RoundCents()
		p.DiscountAmount = original.Subtract(price).RoundCents()
		pct := new(big.Rat).Mul(p.DiscountAmount.Ratio(original), big.NewRat(100, 1))
		p.DiscountPercent = int(money.FromRat(pct).Round(0).Cents() / 100)
	}

	f := e.formatter
	p.Labels = PriceLabels{
		Price:        f.Format(p.Price),
		CashPrice:    f.Format(p.CashPrice),
		Installments: f.Installment(p.Installments.Count, p.Installments.Value),
	}
	if p.OriginalPrice != nil {
		p.Labels.OriginalPrice = f.Format(p.OriginalPrice)
	}
	return p
}
