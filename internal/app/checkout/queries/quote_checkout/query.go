package quote_checkout

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/checkout/contracts"
	"github.com/light-bringer/storefront-service/internal/app/checkout/domain"
	"github.com/light-bringer/storefront-service/internal/app/pricing"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// Request is a checkout session referencing a stored cart.
type Request struct {
	CartID         string
	PostalCode     string
	ShippingMethod string
	PaymentMethod  string
	CouponCode     string
	Installments   int
}

// Result is the priced session as the checkout screen shows it.
type Result struct {
	PostalCode       string           `json:"postalCode"`
	PaymentMethod    string           `json:"paymentMethod"`
	Quote            pricing.Quote    `json:"quote"`
	Shipping         pricing.Shipping `json:"shipping"`
	Payable          *money.Money     `json:"payable"`
	Installments     int              `json:"installments"`
	InstallmentValue *money.Money     `json:"installmentValue"`
}

// Query prices a checkout session without placing it.
type Query struct {
	carts  contracts.CartReader
	engine *pricing.Engine
}

// NewQuery creates a new quote checkout query.
func NewQuery(carts contracts.CartReader, engine *pricing.Engine) *Query {
	return &Query{carts: carts, engine: engine}
}

// Execute loads the cart and prices the session.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	c, err := q.carts.Get(ctx, req.CartID)
	if err != nil {
		return nil, err
	}

	session, err := domain.Session{
		Cart:           c,
		PostalCode:     req.PostalCode,
		ShippingMethod: pricing.ShippingMethod(req.ShippingMethod),
		PaymentMethod:  pricing.PaymentMethod(req.PaymentMethod),
		CouponCode:     req.CouponCode,
		Installments:   req.Installments,
	}.Normalize()
	if err != nil {
		return nil, err
	}

	quote, err := session.Quote(q.engine)
	if err != nil {
		return nil, err
	}
	count, err := session.InstallmentCount(quote)
	if err != nil {
		return nil, err
	}

	payable := quote.Payable(session.PaymentMethod)
	value, err := payable.DivideByInt(int64(count))
	if err != nil {
		return nil, fmt.Errorf("failed to split %s into %d installments: %w", payable, count, err)
	}

	return &Result{
		PostalCode:       session.PostalCode,
		PaymentMethod:    string(session.PaymentMethod),
		Quote:            quote,
		Shipping:         q.engine.ShippingQuote(c.Subtotal()),
		Payable:          payable,
		Installments:     count,
		InstallmentValue: value.RoundCents(),
	}, nil
}
