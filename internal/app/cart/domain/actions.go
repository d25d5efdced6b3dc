package domain

import (
	"slices"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// Action is a cart transition. The set is closed; see Reduce.
type Action interface {
	apply(Cart) Cart
}

// Reduce is the cart reducer.
func Reduce(c Cart, a Action) Cart {
	if a == nil {
		return c
	}
	return a.apply(c)
}

// AddLine adds a product, or merges its quantity into the existing line.
// The resulting quantity is clamped to [1, Stock]. Out-of-stock products are ignored.
type AddLine struct {
	LineID    string
	ProductID string
	Name      string
	UnitPrice *money.Money
	Quantity  int
	Stock     int
}

func (a AddLine) apply(c Cart) Cart {
	if a.Stock <= 0 || a.UnitPrice == nil {
		return c
	}
	qty := max(1, a.Quantity)

	if i := c.index(a.ProductID); i >= 0 {
		return c.withLine(i, func(l Line) Line {
			l.Stock = a.Stock
			l.UnitPrice = a.UnitPrice
			l.Quantity = addQuantity(l.Quantity, qty, a.Stock)
			return l
		})
	}

	c.Lines = append(slices.Clone(c.Lines), Line{
		ID:        a.LineID,
		ProductID: a.ProductID,
		Name:      a.Name,
		UnitPrice: a.UnitPrice,
		Quantity:  clampQuantity(qty, a.Stock),
		Stock:     a.Stock,
	})
	return c
}

// RemoveLine drops a product from the cart.
type RemoveLine struct {
	ProductID string
}

func (a RemoveLine) apply(c Cart) Cart {
	if i := c.index(a.ProductID); i >= 0 {
		return c.withoutLine(i)
	}
	return c
}

// SetQuantity sets a line's quantity, clamped to stock. Zero or less removes the line.
type SetQuantity struct {
	ProductID string
	Quantity  int
}

func (a SetQuantity) apply(c Cart) Cart {
	i := c.index(a.ProductID)
	if i < 0 {
		return c
	}
	if a.Quantity <= 0 {
		return c.withoutLine(i)
	}
	return c.withLine(i, func(l Line) Line {
		l.Quantity = clampQuantity(a.Quantity, l.Stock)
		return l
	})
}

// Increment adds one unit, up to stock.
type Increment struct {
	ProductID string
}

func (a Increment) apply(c Cart) Cart {
	l, ok := c.Line(a.ProductID)
	if !ok {
		return c
	}
	return SetQuantity{ProductID: a.ProductID, Quantity: l.Quantity + 1}.apply(c)
}

// Decrement removes one unit; the last unit removes the line.
type Decrement struct {
	ProductID string
}

func (a Decrement) apply(c Cart) Cart {
	l, ok := c.Line(a.ProductID)
	if !ok {
		return c
	}
	return SetQuantity{ProductID: a.ProductID, Quantity: l.Quantity - 1}.apply(c)
}

// AttachService adds a service to a line. Attaching the same service id again replaces it.
type AttachService struct {
	ProductID string
	Service   Service
}

func (a AttachService) apply(c Cart) Cart {
	i := c.index(a.ProductID)
	if i < 0 || a.Service.Price == nil {
		return c
	}
	return c.withLine(i, func(l Line) Line {
		services := slices.DeleteFunc(slices.Clone(l.Services), func(s Service) bool {
			return s.ServiceID == a.Service.ServiceID
		})
		l.Services = append(services, a.Service)
		return l
	})
}

// DetachService removes a service from a line.
type DetachService struct {
	ProductID string
	ServiceID string
}

func (a DetachService) apply(c Cart) Cart {
	i := c.index(a.ProductID)
	if i < 0 {
		return c
	}
	return c.withLine(i, func(l Line) Line {
		l.Services = slices.DeleteFunc(slices.Clone(l.Services), func(s Service) bool {
			return s.ServiceID == a.ServiceID
		})
		return l
	})
}

// Clear empties the cart.
type Clear struct{}

func (Clear) apply(c Cart) Cart {
	c.Lines = []Line{}
	return c
}
