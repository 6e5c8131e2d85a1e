package shopping

import (
	"github.com/shopspring/decimal"
	"github.com/storefront/core/internal/domain/catalog"
	"github.com/storefront/core/internal/domain/identity"
	"github.com/storefront/core/internal/domain/shared"
)

// Line is a cart entry: a product snapshot plus a quantity of at least 1.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Amount returns unit price times quantity for the given pricing mode.
func (l Line) Amount(bulk bool) decimal.Decimal {
	return l.Product.PriceFor(bulk).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds order lines in insertion order. Invariant: at most one line
// per product id; adding an existing product merges quantities.
type Cart struct {
	lines []Line
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{lines: make([]Line, 0)}
}

// NewCartFromLines restores a cart from persisted lines. Lines that break
// the one-line-per-product invariant are merged; non-positive quantities
// are dropped.
func NewCartFromLines(lines []Line) *Cart {
	c := NewCart()
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		_ = c.Add(l.Product, l.Quantity)
	}
	return c
}

// Add appends a new line or merges the quantity into the existing line for
// the same product id. There is no upper bound on quantity.
func (c *Cart) Add(product catalog.Product, quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == product.ID {
			c.lines[i].Quantity += quantity
			return nil
		}
	}
	c.lines = append(c.lines, Line{Product: product, Quantity: quantity})
	return nil
}

// Remove drops the line with the given product id. Removing an absent
// product is a no-op.
func (c *Cart) Remove(productID string) bool {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// SetQuantity overwrites the quantity of an existing line. A quantity of
// zero or less removes the line. Setting a quantity for a product that is
// not in the cart does nothing; it never creates a line.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			if quantity <= 0 {
				return c.Remove(productID)
			}
			c.lines[i].Quantity = quantity
			return true
		}
	}
	return false
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.lines = c.lines[:0]
}

// Lines returns a copy of the cart lines in insertion order
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total sums unit price times quantity across all lines. Business buyers
// pay the bulk price; every other role pays the standard price.
func (c *Cart) Total(role identity.Role) decimal.Decimal {
	bulk := role == identity.RoleBusiness
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Amount(bulk))
	}
	return total
}

// Count sums quantities across all lines (not the number of lines).
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Len returns the number of distinct lines
func (c *Cart) Len() int {
	return len(c.lines)
}
