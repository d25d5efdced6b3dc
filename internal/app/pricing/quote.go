package pricing

import (
	"fmt"
	"strings"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// PaymentMethod is how the buyer pays.
type PaymentMethod string

const (
	PaymentPix    PaymentMethod = "pix"
	PaymentCredit PaymentMethod = "credit"
	PaymentBoleto PaymentMethod = "boleto"
)

// ParsePaymentMethod validates a payment token, case-insensitively.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case PaymentPix, PaymentCredit, PaymentBoleto:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, s)
}

// QuoteInput is what a cart or checkout hands to the engine.
type QuoteInput struct {
	Subtotal *money.Money
	// CouponCode is optional; blank means no coupon.
	CouponCode     string
	ShippingMethod ShippingMethod
}

// Quote is a fully priced checkout.
//
// FinalTotal = GrossTotal − CouponDiscountTotal + ShippingCost. CashDiscountTotal
// is the alternative figure when paying by Pix; it excludes the installment plan.
type Quote struct {
	GrossTotal          *money.Money   `json:"grossTotal"`
	CouponCode          string         `json:"couponCode,omitempty"`
	CouponDiscountTotal *money.Money   `json:"couponDiscountTotal"`
	ShippingMethod      ShippingMethod `json:"shippingMethod"`
	ShippingCost        *money.Money   `json:"shippingCost"`
	FreeShipping        bool           `json:"freeShipping"`
	FinalTotal          *money.Money   `json:"finalTotal"`
	CashDiscountTotal   *money.Money   `json:"cashDiscountTotal"`
	CashSavings         *money.Money   `json:"cashSavings"`
	InstallmentCount    int            `json:"installmentCount"`
	InstallmentValue    *money.Money   `json:"installmentValue"`
}

// Payable returns what the buyer is charged with the given payment method.
func (q Quote) Payable(m PaymentMethod) *money.Money {
	if m == PaymentPix {
		return q.CashDiscountTotal
	}
	return q.FinalTotal
}

// Quote composes a checkout total: coupon off the subtotal first, then
// shipping on top. The cash figure and the installment plan are both derived
// from that final total. The free-shipping threshold is tested against the
// gross subtotal.
func (e *Engine) Quote(in QuoteInput) (Quote, error) {
	subtotal := money.Zero()
	if in.Subtotal != nil {
		subtotal = in.Subtotal.RoundCents()
	}
	method := in.ShippingMethod
	if method == "" {
		method = ShippingStandard
	}

	q := Quote{
		GrossTotal:          subtotal,
		CouponDiscountTotal: money.Zero(),
		ShippingMethod:      method,
	}

	if strings.TrimSpace(in.CouponCode) != "" {
		c, err := e.CouponAdjustment(subtotal, in.CouponCode)
		if err != nil {
			return Quote{}, err
		}
		q.CouponCode = c.Code
		q.CouponDiscountTotal = c.Discount
	}

	shipping := e.ShippingQuote(subtotal)
	cost, err := shipping.Cost(method)
	if err != nil {
		return Quote{}, err
	}
	q.ShippingCost = cost
	q.FreeShipping = shipping.Free

	q.FinalTotal = subtotal.Subtract(q.CouponDiscountTotal).Add(q.ShippingCost)
	q.CashDiscountTotal = e.CashDiscountPrice(q.FinalTotal)
	q.CashSavings = q.FinalTotal.Subtract(q.CashDiscountTotal)

	plan := e.InstallmentPlan(q.FinalTotal)
	q.InstallmentCount = plan.Count
	q.InstallmentValue = plan.Value
	return q, nil
}
