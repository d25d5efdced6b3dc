package pricing

import (
	"fmt"
	"strings"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// ShippingMethod is a delivery tier.
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
	ShippingPickup   ShippingMethod = "pickup"
)

// ParseShippingMethod validates a method token, case-insensitively.
func ParseShippingMethod(s string) (ShippingMethod, error) {
	switch m := ShippingMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case ShippingStandard, ShippingExpress, ShippingPickup:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownShippingMethod, s)
}

// ShippingOption is one priced delivery tier.
type ShippingOption struct {
	Method       ShippingMethod `json:"method"`
	Cost         *money.Money   `json:"cost"`
	DeliveryDays string         `json:"deliveryDays"`
	Available    bool           `json:"available"`
}

// Shipping is the price of every tier for one cart subtotal.
type Shipping struct {
	Free       bool           `json:"free"`
	PostalCode string         `json:"postalCode,omitempty"`
	Standard   ShippingOption `json:"standard"`
	Express    ShippingOption `json:"express"`
	Pickup     ShippingOption `json:"pickup"`
	// Remaining is how much more the buyer must spend for free shipping; zero once reached.
	Remaining *money.Money `json:"remaining"`
}

// Options lists the tiers in display order.
func (s Shipping) Options() []ShippingOption {
	return []ShippingOption{s.Standard, s.Express, s.Pickup}
}

// Cost returns the price of one tier.
func (s Shipping) Cost(m ShippingMethod) (*money.Money, error) {
	switch m {
	case ShippingStandard:
		return s.Standard.Cost, nil
	case ShippingExpress:
		return s.Express.Cost, nil
	case ShippingPickup:
		if !s.Pickup.Available {
			return nil, ErrPickupUnavailable
		}
		return s.Pickup.Cost, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownShippingMethod, m)
}

// ShippingQuote prices every tier. Delivery is free for both tiers once the
// subtotal reaches the threshold; pickup is always free.
func (e *Engine) ShippingQuote(subtotal *money.Money) Shipping {
	free := !subtotal.LessThan(e.cfg.FreeShippingThreshold)

	standard, express := e.cfg.StandardRate, e.cfg.ExpressRate
	if free {
		standard, express = money.Zero(), money.Zero()
	}

	return Shipping{
		Free:      free,
		Standard:  ShippingOption{Method: ShippingStandard, Cost: standard.RoundCents(), DeliveryDays: e.cfg.StandardDeliveryDays, Available: true},
		Express:   ShippingOption{Method: ShippingExpress, Cost: express.RoundCents(), DeliveryDays: e.cfg.ExpressDeliveryDays, Available: true},
		Pickup:    ShippingOption{Method: ShippingPickup, Cost: money.Zero(), DeliveryDays: e.cfg.PickupDeliveryDays, Available: e.cfg.PickupAvailable},
		Remaining: money.Max(money.Zero(), e.cfg.FreeShippingThreshold.Subtract(subtotal)).RoundCents(),
	}
}

// QuoteShipping validates the destination postal code before pricing.
func (e *Engine) QuoteShipping(postalCode string, subtotal *money.Money) (Shipping, error) {
	cep, err := NormalizePostalCode(postalCode)
	if err != nil {
		return Shipping{}, err
	}
	s := e.ShippingQuote(subtotal)
	s.PostalCode = cep
	return s, nil
}
