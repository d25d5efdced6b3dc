package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

func TestProduct_DiscountRatio(t *testing.T) {
	tests := []struct {
		name     string
		price    *money.Money
		original *money.Money
		want     *big.Rat
	}{
		{"quarter off", money.FromUnits(75), money.FromUnits(100), big.NewRat(1, 4)},
		{"no original price", money.FromUnits(75), nil, new(big.Rat)},
		{"zero original price", money.FromUnits(75), money.Zero(), new(big.Rat)},
		{"price above original", money.FromUnits(120), money.FromUnits(100), new(big.Rat)},
		{"price equals original", money.FromUnits(100), money.FromUnits(100), new(big.Rat)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: tt.price, OriginalPrice: tt.original}
			assert.Equal(t, 0, p.DiscountRatio().Cmp(tt.want))
		})
	}
}

func TestProduct_OffersService(t *testing.T) {
	p := Product{Services: []ServiceType{ServiceInstallation, ServiceWarranty}}

	assert.True(t, p.OffersService(ServiceWarranty))
	assert.False(t, p.OffersService(ServiceRental))
}

func TestParseTokens(t *testing.T) {
	_, ok := ParseCondition("refurbished")
	assert.True(t, ok)
	_, ok = ParseCondition("used")
	assert.False(t, ok)

	_, ok = ParseSortKey("discountDesc")
	assert.True(t, ok)
	_, ok = ParseSortKey("newest")
	assert.False(t, ok)
}
