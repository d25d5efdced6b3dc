package domain

import (
	"slices"
	"strings"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// Facet bounds
const (
	DefaultPriceMinUnits = 0
	DefaultPriceMaxUnits = 10000
	PriceCeilingUnits    = 100000
	MaxRating            = 5
)

var (
	defaultPriceMin = money.FromUnits(DefaultPriceMinUnits)
	defaultPriceMax = money.FromUnits(DefaultPriceMaxUnits)
	priceCeiling    = money.FromUnits(PriceCeilingUnits)
)

// FilterState is the set of active facets of a catalog view.
//
// It is a value: every operation returns a new FilterState and leaves the
// receiver untouched. The zero value is the default (unfiltered) state.
// Set-valued facets are kept sorted and de-duplicated so that two states with
// the same facets compare Equal regardless of toggle order.
type FilterState struct {
	priceMin     *money.Money
	priceMax     *money.Money
	brands       []string
	conditions   []Condition
	categories   []string
	inStock      bool
	freeShipping bool
	rating       int
	serviceTypes []ServiceType
}

// DefaultFilterState returns the unfiltered state.
func DefaultFilterState() FilterState {
	return FilterState{}
}

// PriceMin returns the inclusive lower price bound.
func (f FilterState) PriceMin() *money.Money {
	if f.priceMin == nil {
		return defaultPriceMin
	}
	return f.priceMin
}

// PriceMax returns the inclusive upper price bound.
func (f FilterState) PriceMax() *money.Money {
	if f.priceMax == nil {
		return defaultPriceMax
	}
	return f.priceMax
}

func (f FilterState) Brands() []string            { return slices.Clone(f.brands) }
func (f FilterState) Conditions() []Condition     { return slices.Clone(f.conditions) }
func (f FilterState) Categories() []string        { return slices.Clone(f.categories) }
func (f FilterState) ServiceTypes() []ServiceType { return slices.Clone(f.serviceTypes) }
func (f FilterState) InStock() bool               { return f.inStock }
func (f FilterState) FreeShipping() bool          { return f.freeShipping }
func (f FilterState) Rating() int                 { return f.rating }

// HasBrand reports whether the brand is selected.
func (f FilterState) HasBrand(b string) bool {
	_, found := slices.BinarySearch(f.brands, strings.TrimSpace(b))
	return found
}

// HasCondition reports whether the condition is selected.
func (f FilterState) HasCondition(c Condition) bool {
	_, found := slices.BinarySearch(f.conditions, c)
	return found
}

// HasServiceType reports whether the service type is selected.
func (f FilterState) HasServiceType(t ServiceType) bool {
	_, found := slices.BinarySearch(f.serviceTypes, t)
	return found
}

// WithPriceRange sets both bounds. A min above max raises max to min.
func (f FilterState) WithPriceRange(min, max *money.Money) FilterState {
	lo := clampPrice(min)
	hi := clampPrice(max)
	if lo.GreaterThan(hi) {
		hi = lo
	}
	f.priceMin, f.priceMax = lo, hi
	return f.normalizePrice()
}

// WithPriceMin sets the lower bound, raising the upper bound if it would be crossed.
func (f FilterState) WithPriceMin(min *money.Money) FilterState {
	lo := clampPrice(min)
	f.priceMin = lo
	f.priceMax = money.Max(f.PriceMax(), lo)
	return f.normalizePrice()
}

// WithPriceMax sets the upper bound, lowering the lower bound if it would be crossed.
func (f FilterState) WithPriceMax(max *money.Money) FilterState {
	hi := clampPrice(max)
	f.priceMax = hi
	f.priceMin = money.Min(f.PriceMin(), hi)
	return f.normalizePrice()
}

// ToggleBrand adds the brand if absent, removes it if present.
// Blank names and names containing a comma are ignored.
func (f FilterState) ToggleBrand(b string) FilterState {
	b = strings.TrimSpace(b)
	if b == "" || strings.Contains(b, ",") {
		return f
	}
	f.brands = toggle(f.brands, b)
	return f
}

// ToggleCondition adds or removes a condition. Unknown conditions are ignored.
func (f FilterState) ToggleCondition(c Condition) FilterState {
	if _, ok := ParseCondition(string(c)); !ok {
		return f
	}
	f.conditions = toggle(f.conditions, c)
	return f
}

// ToggleServiceType adds or removes a service type. Unknown types are ignored.
func (f FilterState) ToggleServiceType(t ServiceType) FilterState {
	if _, ok := ParseServiceType(string(t)); !ok {
		return f
	}
	f.serviceTypes = toggle(f.serviceTypes, t)
	return f
}

// SetInStock toggles the in-stock-only facet.
func (f FilterState) SetInStock(v bool) FilterState {
	f.inStock = v
	return f
}

// SetFreeShipping toggles the free-shipping-only facet.
func (f FilterState) SetFreeShipping(v bool) FilterState {
	f.freeShipping = v
	return f
}

// SetRating sets the minimum rating, clamped to 0..5. Zero disables the facet.
func (f FilterState) SetRating(n int) FilterState {
	f.rating = max(0, min(n, MaxRating))
	return f
}

// WithCategories replaces the category scope.
func (f FilterState) WithCategories(slugs ...string) FilterState {
	out := make([]string, 0, len(slugs))
	for _, s := range slugs {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	f.categories = normalizeSet(out)
	return f
}

// Clear resets every facet except the category scope, which is navigational context.
func (f FilterState) Clear() FilterState {
	return DefaultFilterState().WithCategories(f.categories...)
}

// IsDefault reports whether no user-chosen facet is active. The category scope is ignored.
func (f FilterState) IsDefault() bool {
	return f.Equal(f.Clear())
}

// ActiveFacetCount counts the user-chosen facets that are narrowing the view:
// one per selected brand, condition and service type, plus one each for a
// non-default price range, in-stock, free shipping and rating.
func (f FilterState) ActiveFacetCount() int {
	n := len(f.brands) + len(f.conditions) + len(f.serviceTypes)
	if !f.PriceMin().Equals(defaultPriceMin) || !f.PriceMax().Equals(defaultPriceMax) {
		n++
	}
	if f.inStock {
		n++
	}
	if f.freeShipping {
		n++
	}
	if f.rating > 0 {
		n++
	}
	return n
}

// Equal reports whether two states select exactly the same products.
func (f FilterState) Equal(other FilterState) bool {
	return f.PriceMin().Equals(other.PriceMin()) &&
		f.PriceMax().Equals(other.PriceMax()) &&
		slices.Equal(f.brands, other.brands) &&
		slices.Equal(f.conditions, other.conditions) &&
		slices.Equal(f.categories, other.categories) &&
		slices.Equal(f.serviceTypes, other.serviceTypes) &&
		f.inStock == other.inStock &&
		f.freeShipping == other.freeShipping &&
		f.rating == other.rating
}

// normalizePrice collapses default bounds back to nil so the zero value stays canonical.
func (f FilterState) normalizePrice() FilterState {
	if f.priceMin != nil && f.priceMin.Equals(defaultPriceMin) {
		f.priceMin = nil
	}
	if f.priceMax != nil && f.priceMax.Equals(defaultPriceMax) {
		f.priceMax = nil
	}
	return f
}

func clampPrice(m *money.Money) *money.Money {
	if m == nil || m.IsNegative() {
		return money.Zero()
	}
	return money.Min(m.RoundCents(), priceCeiling)
}

func toggle[T ~string](set []T, v T) []T {
	i, found := slices.BinarySearch(set, v)
	if found {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return slices.Insert(slices.Clone(set), i, v)
}

func normalizeSet[T ~string](vals []T) []T {
	if len(vals) == 0 {
		return nil
	}
	out := slices.Clone(vals)
	slices.Sort(out)
	return slices.Compact(out)
}
