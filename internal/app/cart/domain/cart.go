// Package domain holds the cart aggregate and its reducer.
package domain

import (
	"slices"

	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// Service is an add-on (installation, extended warranty...) attached to a line.
type Service struct {
	ServiceID string              `json:"serviceId"`
	Name      string              `json:"name"`
	Type      catalog.ServiceType `json:"type"`
	Price     *money.Money        `json:"price"`
}

// Line is one product in the cart.
type Line struct {
	ID        string       `json:"id"`
	ProductID string       `json:"productId"`
	Name      string       `json:"name"`
	UnitPrice *money.Money `json:"unitPrice"`
	Quantity  int          `json:"quantity"`
	Stock     int          `json:"stock"`
	Services  []Service    `json:"services,omitempty"`
}

// Total is unitPrice × quantity plus every attached service.
// Services are charged once per line, not per unit.
func (l Line) Total() *money.Money {
	total := l.UnitPrice.MultiplyByInt(int64(l.Quantity))
	for _, s := range l.Services {
		total = total.Add(s.Price)
	}
	return total
}

// Cart is the buyer's basket. Like every state held in a store it is treated
// as a value: reducers return a new Cart and never touch the old one.
type Cart struct {
	ID    string `json:"id"`
	Lines []Line `json:"lines"`
}

// New returns an empty cart.
func New(id string) Cart {
	return Cart{ID: id, Lines: []Line{}}
}

// Subtotal sums every line total.
func (c Cart) Subtotal() *money.Money {
	sum := money.Zero()
	for _, l := range c.Lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// ItemCount is the number of units across all lines.
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Line returns the line holding productID.
func (c Cart) Line(productID string) (Line, bool) {
	i := c.index(productID)
	if i < 0 {
		return Line{}, false
	}
	return c.Lines[i], true
}

func (c Cart) index(productID string) int {
	return slices.IndexFunc(c.Lines, func(l Line) bool { return l.ProductID == productID })
}

// withLine returns a copy of c with line i replaced by fn's result.
func (c Cart) withLine(i int, fn func(Line) Line) Cart {
	lines := slices.Clone(c.Lines)
	lines[i] = fn(lines[i])
	c.Lines = lines
	return c
}

func (c Cart) withoutLine(i int) Cart {
	c.Lines = slices.Delete(slices.Clone(c.Lines), i, i+1)
	return c
}

func clampQuantity(q, stock int) int {
	return max(1, min(q, stock))
}

// addQuantity merges add into have without overflowing: anything that would
// pass stock lands on stock.
func addQuantity(have, add, stock int) int {
	if add >= stock-have {
		return max(1, stock)
	}
	return clampQuantity(have+add, stock)
}
