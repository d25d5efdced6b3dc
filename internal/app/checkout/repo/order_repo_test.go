package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/checkout/domain"
	"github.com/light-bringer/storefront-service/internal/app/pricing"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

func testOrder() *domain.Order {
	l := line("p1", 2)
	l.Services = []cart.Service{{ServiceID: "inst-001", Name: "Instalação", Type: "installation", Price: money.MustParse("299.00")}}
	return &domain.Order{
		ID:             "o1",
		CartID:         "c1",
		Status:         domain.StatusPlaced,
		PostalCode:     "01310-100",
		ShippingMethod: pricing.ShippingStandard,
		PaymentMethod:  pricing.PaymentPix,
		CouponCode:     "PRIMEIRA10",
		Installments:   1,
		Quote: pricing.Quote{
			GrossTotal:          money.MustParse("319.00"),
			CouponDiscountTotal: money.MustParse("31.90"),
			ShippingCost:        money.Zero(),
			FinalTotal:          money.MustParse("287.10"),
		},
		Payable:  money.MustParse("258.39"),
		Lines:    []cart.Line{l},
		PlacedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestOrderToData(t *testing.T) {
	data, err := orderToData(testOrder())
	require.NoError(t, err)

	assert.Equal(t, "o1", data.OrderID)
	assert.Equal(t, int64(31900), data.GrossCents)
	assert.Equal(t, int64(3190), data.CouponDiscountCents)
	assert.Equal(t, int64(0), data.ShippingCents)
	assert.Equal(t, int64(28710), data.FinalCents)
	assert.Equal(t, int64(25839), data.PayableCents)
	assert.True(t, data.CouponCode.Valid)
	assert.Equal(t, "standard", data.ShippingMethod)
}

func TestOrderRepo_Mutations(t *testing.T) {
	r := NewOrderRepo()
	order := testOrder()

	mut, err := r.InsertMut(order)
	require.NoError(t, err)
	assert.NotNil(t, mut)

	lines, err := r.LineMuts(order)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestToCents(t *testing.T) {
	c, err := toCents(money.MustParse("19.995"))
	require.NoError(t, err)
	assert.Equal(t, int64(2000), c)

	c, err = toCents(nil)
	require.NoError(t, err)
	assert.Zero(t, c)

	huge := money.FromUnits(1 << 62).MultiplyByInt(1000)
	_, err = toCents(huge)
	assert.ErrorIs(t, err, domain.ErrAmountOverflow)
}

func TestLinesStatement(t *testing.T) {
	stmt := LinesStatement("o1")
	assert.Contains(t, stmt.SQL, "FROM order_lines")
	assert.Contains(t, stmt.SQL, "ORDER BY line_id ASC")
	assert.Equal(t, "o1", stmt.Params["p0"])
}
