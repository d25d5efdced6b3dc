package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

func addGeladeira(qty int) AddLine {
	return AddLine{LineID: "l1", ProductID: "p1", Name: "Geladeira", UnitPrice: money.MustParse("3299.00"), Quantity: qty, Stock: 3}
}

func addVentilador(qty int) AddLine {
	return AddLine{LineID: "l2", ProductID: "p2", Name: "Ventilador", UnitPrice: money.MustParse("199.90"), Quantity: qty, Stock: 10}
}

func reduceAll(c Cart, actions ...Action) Cart {
	for _, a := range actions {
		c = Reduce(c, a)
	}
	return c
}

func TestAddLine(t *testing.T) {
	t.Run("creates a line", func(t *testing.T) {
		c := Reduce(New("c1"), addVentilador(2))
		require.Len(t, c.Lines, 1)
		assert.Equal(t, "l2", c.Lines[0].ID)
		assert.Equal(t, 2, c.Lines[0].Quantity)
	})

	t.Run("merges an existing product", func(t *testing.T) {
		c := reduceAll(New("c1"), addVentilador(2), addVentilador(3))
		require.Len(t, c.Lines, 1)
		assert.Equal(t, 5, c.Lines[0].Quantity)
	})

	t.Run("merged quantity is clamped to stock", func(t *testing.T) {
		c := reduceAll(New("c1"), addGeladeira(2), addGeladeira(2))
		assert.Equal(t, 3, c.Lines[0].Quantity)
	})

	t.Run("huge quantities clamp to stock", func(t *testing.T) {
		c := reduceAll(New("c1"), addVentilador(2), addVentilador(math.MaxInt))
		assert.Equal(t, 10, c.Lines[0].Quantity)

		c = Reduce(New("c1"), addVentilador(math.MaxInt))
		assert.Equal(t, 10, c.Lines[0].Quantity)
	})

	t.Run("quantity below one adds one", func(t *testing.T) {
		c := Reduce(New("c1"), addVentilador(0))
		assert.Equal(t, 1, c.Lines[0].Quantity)
	})

	t.Run("out of stock is ignored", func(t *testing.T) {
		a := addGeladeira(1)
		a.Stock = 0
		assert.True(t, Reduce(New("c1"), a).IsEmpty())
	})

	t.Run("previous state is untouched", func(t *testing.T) {
		before := Reduce(New("c1"), addVentilador(1))
		after := Reduce(before, addVentilador(1))
		assert.Equal(t, 1, before.Lines[0].Quantity)
		assert.Equal(t, 2, after.Lines[0].Quantity)
	})
}

func TestQuantityTransitions(t *testing.T) {
	base := reduceAll(New("c1"), addGeladeira(1), addVentilador(1))

	tests := []struct {
		name    string
		action  Action
		wantQty int
		gone    bool
	}{
		{"set within stock", SetQuantity{ProductID: "p1", Quantity: 2}, 2, false},
		{"set above stock clamps", SetQuantity{ProductID: "p1", Quantity: 99}, 3, false},
		{"set zero removes", SetQuantity{ProductID: "p1", Quantity: 0}, 0, true},
		{"set negative removes", SetQuantity{ProductID: "p1", Quantity: -4}, 0, true},
		{"increment", Increment{ProductID: "p1"}, 2, false},
		{"decrement last unit removes", Decrement{ProductID: "p1"}, 0, true},
		{"remove", RemoveLine{ProductID: "p1"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Reduce(base, tt.action)
			l, ok := c.Line("p1")
			if tt.gone {
				assert.False(t, ok)
				assert.Len(t, c.Lines, 1)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantQty, l.Quantity)
		})
	}

	t.Run("increment stops at stock", func(t *testing.T) {
		c := reduceAll(base, Increment{ProductID: "p1"}, Increment{ProductID: "p1"}, Increment{ProductID: "p1"})
		l, _ := c.Line("p1")
		assert.Equal(t, 3, l.Quantity)
	})

	t.Run("unknown product is a no-op", func(t *testing.T) {
		c := reduceAll(base, Increment{ProductID: "nope"}, SetQuantity{ProductID: "nope", Quantity: 2}, RemoveLine{ProductID: "nope"})
		assert.Equal(t, base, c)
	})
}

func TestServices(t *testing.T) {
	install := Service{ServiceID: "s-inst", Name: "Instalação", Type: catalog.ServiceInstallation, Price: money.MustParse("149.90")}
	warranty := Service{ServiceID: "s-war", Name: "Garantia estendida", Type: catalog.ServiceWarranty, Price: money.MustParse("99.90")}

	c := reduceAll(New("c1"),
		addGeladeira(2),
		AttachService{ProductID: "p1", Service: install},
		AttachService{ProductID: "p1", Service: warranty},
		AttachService{ProductID: "p1", Service: install},
	)

	l, _ := c.Line("p1")
	require.Len(t, l.Services, 2, "re-attaching replaces")
	// 2 × 3299.00 + 149.90 + 99.90
	assert.Equal(t, "6847.80", c.Subtotal().String())

	c = Reduce(c, DetachService{ProductID: "p1", ServiceID: "s-war"})
	assert.Equal(t, "6747.80", c.Subtotal().String())
}

func TestSubtotalAndItemCount(t *testing.T) {
	c := reduceAll(New("c1"), addGeladeira(1), addVentilador(3))

	assert.Equal(t, "3898.70", c.Subtotal().String())
	assert.Equal(t, 4, c.ItemCount())

	c = Reduce(c, Clear{})
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Subtotal().IsZero())
	assert.Equal(t, 0, c.ItemCount())
	assert.Equal(t, "c1", c.ID)
}

func TestReduce_NilAction(t *testing.T) {
	c := New("c1")
	assert.Equal(t, c, Reduce(c, nil))
}
