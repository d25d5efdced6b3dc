package controller

import (
	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// Filters wraps a facet change so that pagination restarts.
func Filters(fn func(domain.FilterState) domain.FilterState) Edit {
	return func(v domain.ViewState) domain.ViewState {
		return v.WithFilters(fn(v.Filters))
	}
}

func ToggleBrand(b string) Edit {
	return Filters(func(f domain.FilterState) domain.FilterState { return f.ToggleBrand(b) })
}

func ToggleCondition(c domain.Condition) Edit {
	return Filters(func(f domain.FilterState) domain.FilterState { return f.ToggleCondition(c) })
}

func ToggleServiceType(t domain.ServiceType) Edit {
	return Filters(func(f domain.FilterState) domain.FilterState { return f.ToggleServiceType(t) })
}

func SetPriceRange(lo, hi *money.Money) Edit {
	return Filters(func(f domain.FilterState) domain.FilterState { return f.WithPriceRange(lo, hi) })
}

func SetInStock(on bool) Edit {
	return Filters(func(f domain.FilterState) domain.FilterState { return f.SetInStock(on) })
}

func SetFreeShipping(on bool) Edit {
	return Filters(func(f domain.FilterState) domain.FilterState { return f.SetFreeShipping(on) })
}

func SetRating(n int) Edit {
	return Filters(func(f domain.FilterState) domain.FilterState { return f.SetRating(n) })
}

// ClearFilters resets every facet but keeps the category scope.
func ClearFilters() Edit {
	return Filters(domain.FilterState.Clear)
}

func SetSort(k domain.SortKey) Edit {
	return func(v domain.ViewState) domain.ViewState { return v.WithSort(k) }
}

func SetMode(m domain.Mode) Edit {
	return func(v domain.ViewState) domain.ViewState { return v.WithMode(m) }
}

func SetLayout(l domain.Layout) Edit {
	return func(v domain.ViewState) domain.ViewState { return v.WithLayout(l) }
}

// LoadMore reveals the next page of results.
func LoadMore() Edit {
	return func(v domain.ViewState) domain.ViewState { return v.NextPage() }
}
