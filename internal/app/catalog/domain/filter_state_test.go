package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

func TestFilterState_Default(t *testing.T) {
	f := DefaultFilterState()

	assert.Equal(t, "0.00", f.PriceMin().String())
	assert.Equal(t, "10000.00", f.PriceMax().String())
	assert.Empty(t, f.Brands())
	assert.Empty(t, f.Conditions())
	assert.False(t, f.InStock())
	assert.False(t, f.FreeShipping())
	assert.Equal(t, 0, f.Rating())
	assert.True(t, f.IsDefault())
	assert.Equal(t, 0, f.ActiveFacetCount())
	assert.True(t, f.Equal(FilterState{}))
}

func TestFilterState_Immutability(t *testing.T) {
	base := DefaultFilterState().ToggleBrand("Samsung")
	next := base.ToggleBrand("LG").SetInStock(true)

	assert.Equal(t, []string{"Samsung"}, base.Brands())
	assert.False(t, base.InStock())
	assert.Equal(t, []string{"LG", "Samsung"}, next.Brands())

	brands := next.Brands()
	brands[0] = "tampered"
	assert.Equal(t, []string{"LG", "Samsung"}, next.Brands())
}

func TestFilterState_PriceClamping(t *testing.T) {
	t.Run("min above max raises max", func(t *testing.T) {
		f := DefaultFilterState().WithPriceMax(money.FromUnits(500)).WithPriceMin(money.FromUnits(800))
		assert.Equal(t, "800.00", f.PriceMin().String())
		assert.Equal(t, "800.00", f.PriceMax().String())
	})

	t.Run("max below min lowers min", func(t *testing.T) {
		f := DefaultFilterState().WithPriceMin(money.FromUnits(800)).WithPriceMax(money.FromUnits(300))
		assert.Equal(t, "300.00", f.PriceMin().String())
		assert.Equal(t, "300.00", f.PriceMax().String())
	})

	t.Run("range with inverted bounds", func(t *testing.T) {
		f := DefaultFilterState().WithPriceRange(money.FromUnits(900), money.FromUnits(100))
		assert.Equal(t, "900.00", f.PriceMin().String())
		assert.Equal(t, "900.00", f.PriceMax().String())
	})

	t.Run("negative clamps to zero", func(t *testing.T) {
		f := DefaultFilterState().WithPriceMin(money.MustParse("-10"))
		assert.True(t, f.PriceMin().IsZero())
	})

	t.Run("ceiling caps the upper bound", func(t *testing.T) {
		f := DefaultFilterState().WithPriceMax(money.FromUnits(250000))
		assert.Equal(t, "100000.00", f.PriceMax().String())
	})

	t.Run("bounds are rounded to cents", func(t *testing.T) {
		f := DefaultFilterState().WithPriceMin(money.MustParse("10.005"))
		assert.Equal(t, "10.01", f.PriceMin().String())
	})

	t.Run("explicit defaults equal the zero value", func(t *testing.T) {
		f := DefaultFilterState().WithPriceRange(money.Zero(), money.FromUnits(10000))
		assert.True(t, f.Equal(DefaultFilterState()))
	})
}

func TestFilterState_Toggles(t *testing.T) {
	t.Run("brand toggles on and off", func(t *testing.T) {
		f := DefaultFilterState().ToggleBrand("Samsung")
		assert.True(t, f.HasBrand("Samsung"))
		f = f.ToggleBrand("Samsung")
		assert.False(t, f.HasBrand("Samsung"))
		assert.True(t, f.Equal(DefaultFilterState()))
	})

	t.Run("blank and comma brands are ignored", func(t *testing.T) {
		f := DefaultFilterState().ToggleBrand("  ").ToggleBrand("A,B")
		assert.Empty(t, f.Brands())
	})

	t.Run("toggle order does not matter", func(t *testing.T) {
		a := DefaultFilterState().ToggleBrand("LG").ToggleBrand("Brastemp")
		b := DefaultFilterState().ToggleBrand("Brastemp").ToggleBrand("LG")
		assert.True(t, a.Equal(b))
	})

	t.Run("unknown condition is ignored", func(t *testing.T) {
		f := DefaultFilterState().ToggleCondition("broken").ToggleCondition(ConditionRefurbished)
		assert.Equal(t, []Condition{ConditionRefurbished}, f.Conditions())
		assert.True(t, f.HasCondition(ConditionRefurbished))
	})

	t.Run("service types", func(t *testing.T) {
		f := DefaultFilterState().ToggleServiceType(ServiceWarranty).ToggleServiceType("teleport")
		assert.Equal(t, []ServiceType{ServiceWarranty}, f.ServiceTypes())
		assert.True(t, f.HasServiceType(ServiceWarranty))
	})
}

func TestFilterState_SetRating(t *testing.T) {
	assert.Equal(t, 4, DefaultFilterState().SetRating(4).Rating())
	assert.Equal(t, 5, DefaultFilterState().SetRating(9).Rating())
	assert.Equal(t, 0, DefaultFilterState().SetRating(-2).Rating())
}

func TestFilterState_Clear(t *testing.T) {
	f := DefaultFilterState().
		WithCategories("geladeiras", "fogoes").
		ToggleBrand("Electrolux").
		ToggleCondition(ConditionNew).
		SetInStock(true).
		SetFreeShipping(true).
		SetRating(3).
		WithPriceRange(money.FromUnits(100), money.FromUnits(2000))

	assert.Equal(t, 6, f.ActiveFacetCount())
	assert.False(t, f.IsDefault())

	cleared := f.Clear()
	assert.True(t, cleared.IsDefault())
	assert.Equal(t, []string{"fogoes", "geladeiras"}, cleared.Categories())
	assert.Equal(t, 0, cleared.ActiveFacetCount())
}

func TestFilterState_Categories(t *testing.T) {
	f := DefaultFilterState().WithCategories("tvs", " ", "tvs", "audio")
	assert.Equal(t, []string{"audio", "tvs"}, f.Categories())
	assert.True(t, f.IsDefault(), "category scope is not a user facet")
}
