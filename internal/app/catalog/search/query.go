// Package search applies a filter state to a product collection.
//
// Everything here is a pure function over its arguments: nothing is cached and
// the input slice is never modified.
package search

import (
	"cmp"
	"slices"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// Predicate reports whether a product passes one facet.
type Predicate func(p domain.Product) bool

// Query filters products by every active facet of f and orders the survivors by key.
// A nil resolver treats every category slug as a leaf.
func Query(products []domain.Product, f domain.FilterState, key domain.SortKey, resolver CategoryResolver) []domain.Product {
	return Sort(Filter(products, f, resolver), key)
}

// Filter keeps the products that satisfy all active facets, in input order.
func Filter(products []domain.Product, f domain.FilterState, resolver CategoryResolver) []domain.Product {
	preds := Predicates(f, resolver)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matchesAll(p, preds) {
			out = append(out, p)
		}
	}
	return out
}

// Predicates builds the AND-composed facet tests for f. Facets at their
// default contribute no predicate.
func Predicates(f domain.FilterState, resolver CategoryResolver) []Predicate {
	var preds []Predicate

	if cats := f.Categories(); len(cats) > 0 {
		allowed := resolveScope(cats, resolver)
		preds = append(preds, func(p domain.Product) bool {
			_, ok := allowed[p.CategorySlug]
			return ok
		})
	}

	if lo, hi := f.PriceMin(), f.PriceMax(); !isDefaultRange(f) {
		preds = append(preds, func(p domain.Product) bool {
			price := priceOf(p)
			return !price.LessThan(lo) && !price.GreaterThan(hi)
		})
	}

	if len(f.Brands()) > 0 {
		preds = append(preds, func(p domain.Product) bool { return f.HasBrand(p.Brand) })
	}
	if len(f.Conditions()) > 0 {
		preds = append(preds, func(p domain.Product) bool { return f.HasCondition(p.Condition) })
	}
	if r := f.Rating(); r > 0 {
		preds = append(preds, func(p domain.Product) bool { return p.Rating >= float64(r) })
	}
	if f.InStock() {
		preds = append(preds, domain.Product.InStock)
	}
	if f.FreeShipping() {
		preds = append(preds, func(p domain.Product) bool { return p.FreeShipping })
	}
	if types := f.ServiceTypes(); len(types) > 0 {
		preds = append(preds, func(p domain.Product) bool {
			return slices.ContainsFunc(types, p.OffersService)
		})
	}
	return preds
}

// Sort returns a stably ordered copy. Relevance keeps input order.
func Sort(products []domain.Product, key domain.SortKey) []domain.Product {
	out := slices.Clone(products)

	var less func(a, b domain.Product) int
	switch key {
	case domain.SortPriceAsc:
		less = func(a, b domain.Product) int { return priceOf(a).Cmp(priceOf(b)) }
	case domain.SortPriceDesc:
		less = func(a, b domain.Product) int { return priceOf(b).Cmp(priceOf(a)) }
	case domain.SortDiscountDesc:
		less = func(a, b domain.Product) int { return b.DiscountRatio().Cmp(a.DiscountRatio()) }
	case domain.SortRatingDesc:
		less = func(a, b domain.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		return out
	}
	slices.SortStableFunc(out, less)
	return out
}

func isDefaultRange(f domain.FilterState) bool {
	def := domain.DefaultFilterState()
	return f.PriceMin().Equals(def.PriceMin()) && f.PriceMax().Equals(def.PriceMax())
}

func priceOf(p domain.Product) *money.Money {
	if p.Price == nil {
		return money.Zero()
	}
	return p.Price
}

func resolveScope(scope []string, resolver CategoryResolver) map[string]struct{} {
	allowed := make(map[string]struct{})
	for _, slug := range scope {
		if resolver == nil {
			allowed[slug] = struct{}{}
			continue
		}
		for _, s := range resolver.Resolve(slug) {
			allowed[s] = struct{}{}
		}
	}
	return allowed
}

func matchesAll(p domain.Product, preds []Predicate) bool {
	for _, pred := range preds {
		if !pred(p) {
			return false
		}
	}
	return true
}
