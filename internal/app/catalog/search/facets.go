package search

import (
	"cmp"
	"slices"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// FacetCount is one selectable facet value and how many products carry it.
type FacetCount struct {
	Value    string `json:"value"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

// PriceRange is the span of prices in a collection.
type PriceRange struct {
	Min *money.Money `json:"min"`
	Max *money.Money `json:"max"`
}

// Summary describes the facet values available within the category scope,
// independent of the user's other selections.
type Summary struct {
	Total        int          `json:"total"`
	Brands       []FacetCount `json:"brands"`
	Conditions   []FacetCount `json:"conditions"`
	Services     []FacetCount `json:"services"`
	Price        PriceRange   `json:"price"`
	InStock      int          `json:"inStock"`
	FreeShipping int          `json:"freeShipping"`
	ActiveCount  int          `json:"activeCount"`
}

// Facets summarizes the products inside f's category scope.
func Facets(products []domain.Product, f domain.FilterState, resolver CategoryResolver) Summary {
	scoped := Filter(products, domain.DefaultFilterState().WithCategories(f.Categories()...), resolver)

	brands := map[string]int{}
	conditions := map[domain.Condition]int{}
	services := map[domain.ServiceType]int{}
	s := Summary{
		Total:       len(scoped),
		Price:       PriceRange{Min: money.Zero(), Max: money.Zero()},
		ActiveCount: f.ActiveFacetCount(),
	}

	for i, p := range scoped {
		if p.Brand != "" {
			brands[p.Brand]++
		}
		conditions[p.Condition]++
		for _, t := range p.Services {
			services[t]++
		}
		if p.InStock() {
			s.InStock++
		}
		if p.FreeShipping {
			s.FreeShipping++
		}
		price := priceOf(p)
		if i == 0 {
			s.Price = PriceRange{Min: price, Max: price}
			continue
		}
		s.Price.Min = money.Min(s.Price.Min, price)
		s.Price.Max = money.Max(s.Price.Max, price)
	}

	for b, n := range brands {
		s.Brands = append(s.Brands, FacetCount{Value: b, Count: n, Selected: f.HasBrand(b)})
	}
	slices.SortFunc(s.Brands, func(a, b FacetCount) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Value, b.Value))
	})

	for _, c := range domain.Conditions {
		if n := conditions[c]; n > 0 {
			s.Conditions = append(s.Conditions, FacetCount{Value: string(c), Count: n, Selected: f.HasCondition(c)})
		}
	}
	for _, t := range domain.ServiceTypes {
		if n := services[t]; n > 0 {
			s.Services = append(s.Services, FacetCount{Value: string(t), Count: n, Selected: f.HasServiceType(t)})
		}
	}
	return s
}
