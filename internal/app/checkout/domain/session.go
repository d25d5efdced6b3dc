// Package domain holds the checkout session and the order it produces.
package domain

import (
	"strings"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/pricing"
)

// Session is one checkout attempt: a cart snapshot plus the buyer's choices.
type Session struct {
	Cart           cart.Cart
	PostalCode     string
	ShippingMethod pricing.ShippingMethod
	PaymentMethod  pricing.PaymentMethod
	CouponCode     string
	// Installments is the count chosen for credit card payments.
	// Zero picks the longest plan the total allows.
	Installments int
}

// Normalize validates the session and returns it in canonical form: the
// postal code formatted as NNNNN-NNN, methods lower-cased and defaulted
// (standard shipping, pix), the coupon upper-cased.
func (s Session) Normalize() (Session, error) {
	if s.Cart.IsEmpty() {
		return Session{}, cart.ErrEmptyCart
	}

	cep, err := pricing.NormalizePostalCode(s.PostalCode)
	if err != nil {
		return Session{}, err
	}
	s.PostalCode = cep

	if s.ShippingMethod == "" {
		s.ShippingMethod = pricing.ShippingStandard
	}
	if s.ShippingMethod, err = pricing.ParseShippingMethod(string(s.ShippingMethod)); err != nil {
		return Session{}, err
	}

	if s.PaymentMethod == "" {
		s.PaymentMethod = pricing.PaymentPix
	}
	if s.PaymentMethod, err = pricing.ParsePaymentMethod(string(s.PaymentMethod)); err != nil {
		return Session{}, err
	}

	s.CouponCode = strings.ToUpper(strings.TrimSpace(s.CouponCode))
	return s, nil
}

// Quote prices the session. Only the pricing engine computes money here.
func (s Session) Quote(engine *pricing.Engine) (pricing.Quote, error) {
	s, err := s.Normalize()
	if err != nil {
		return pricing.Quote{}, err
	}
	return engine.Quote(pricing.QuoteInput{
		Subtotal:       s.Cart.Subtotal(),
		CouponCode:     s.CouponCode,
		ShippingMethod: s.ShippingMethod,
	})
}

// InstallmentCount resolves the chosen plan against a quote. Only credit
// payments are split; a choice above what the total allows is rejected.
func (s Session) InstallmentCount(q pricing.Quote) (int, error) {
	if s.PaymentMethod != pricing.PaymentCredit {
		return 1, nil
	}
	if s.Installments == 0 {
		return q.InstallmentCount, nil
	}
	if s.Installments < 1 || s.Installments > q.InstallmentCount {
		return 0, ErrInvalidInstallments
	}
	return s.Installments, nil
}
