package domain

import (
	"math/big"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// Condition is the physical condition a product is sold in.
type Condition string

const (
	ConditionNew         Condition = "new"
	ConditionRepackaged  Condition = "repackaged"
	ConditionRefurbished Condition = "refurbished"
)

// Conditions lists every known condition in display order.
var Conditions = []Condition{ConditionNew, ConditionRepackaged, ConditionRefurbished}

// ParseCondition validates a condition token.
func ParseCondition(s string) (Condition, bool) {
	for _, c := range Conditions {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// ServiceType is a kind of add-on service a product can be sold with.
type ServiceType string

const (
	ServiceInstallation ServiceType = "installation"
	ServiceMaintenance  ServiceType = "maintenance"
	ServiceWarranty     ServiceType = "warranty"
	ServiceProtection   ServiceType = "protection"
	ServiceRental       ServiceType = "rental"
)

// ServiceTypes lists every known service type.
var ServiceTypes = []ServiceType{
	ServiceInstallation,
	ServiceMaintenance,
	ServiceWarranty,
	ServiceProtection,
	ServiceRental,
}

// ParseServiceType validates a service type token.
func ParseServiceType(s string) (ServiceType, bool) {
	for _, t := range ServiceTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Product is a catalog entry. The catalog is owned by an external data source;
// nothing in this service mutates a Product.
type Product struct {
	ID            string        `json:"id"`
	Slug          string        `json:"slug"`
	Name          string        `json:"name"`
	Price         *money.Money  `json:"price"`
	OriginalPrice *money.Money  `json:"originalPrice"`
	Brand         string        `json:"brand"`
	Condition     Condition     `json:"condition"`
	CategorySlug  string        `json:"categorySlug"`
	Stock         int           `json:"stock"`
	Rating        float64       `json:"rating"`
	ReviewCount   int           `json:"reviewCount"`
	FreeShipping  bool          `json:"freeShipping"`
	Tags          []string      `json:"tags,omitempty"`
	Services      []ServiceType `json:"services,omitempty"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// DiscountRatio returns (original - price) / original.
// It is zero when there is no original price or the product is not actually discounted.
func (p Product) DiscountRatio() *big.Rat {
	if p.OriginalPrice == nil || p.Price == nil || !p.OriginalPrice.IsPositive() {
		return new(big.Rat)
	}
	if p.Price.Cmp(p.OriginalPrice) >= 0 {
		return new(big.Rat)
	}
	return p.OriginalPrice.Subtract(p.Price).Ratio(p.OriginalPrice)
}

// OffersService reports whether the product can be sold with the given service type.
func (p Product) OffersService(t ServiceType) bool {
	for _, s := range p.Services {
		if s == t {
			return true
		}
	}
	return false
}
