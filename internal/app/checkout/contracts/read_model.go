package contracts

import (
	"time"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// OrderView is the read side of a placed order.
type OrderView struct {
	OrderID        string          `json:"orderId"`
	CartID         string          `json:"cartId"`
	Status         string          `json:"status"`
	PostalCode     string          `json:"postalCode"`
	ShippingMethod string          `json:"shippingMethod"`
	PaymentMethod  string          `json:"paymentMethod"`
	CouponCode     string          `json:"couponCode,omitempty"`
	Installments   int             `json:"installments"`
	GrossTotal     *money.Money    `json:"grossTotal"`
	CouponDiscount *money.Money    `json:"couponDiscount"`
	ShippingCost   *money.Money    `json:"shippingCost"`
	FinalTotal     *money.Money    `json:"finalTotal"`
	Payable        *money.Money    `json:"payable"`
	Lines          []OrderLineView `json:"lines"`
	PlacedAt       time.Time       `json:"placedAt"`
}

// OrderLineView is one line of an OrderView.
type OrderLineView struct {
	LineID    string       `json:"lineId"`
	ProductID string       `json:"productId"`
	Name      string       `json:"name"`
	Quantity  int          `json:"quantity"`
	UnitPrice *money.Money `json:"unitPrice"`
	Services  *money.Money `json:"services"`
}
