package domain

import (
	"slices"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// ServiceOption is an add-on a customer can attach to a cart line:
// installation, extended warranty, a rental period. Categories lists the
// category slugs the option is sold for.
type ServiceOption struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       *money.Money `json:"price"`
	Duration    string       `json:"duration,omitempty"`
	Type        ServiceType  `json:"type"`
	Categories  []string     `json:"categories"`
}

// AvailableFor reports whether the option is sold for any of the given slugs.
func (s ServiceOption) AvailableFor(categorySlugs ...string) bool {
	for _, slug := range categorySlugs {
		if slices.Contains(s.Categories, slug) {
			return true
		}
	}
	return false
}
