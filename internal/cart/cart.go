// Package cart is the per-session staging area for a sale. A cart never
// touches engine state; it snapshots product name and price at add time and
// is validated against live stock only when the checkout commits.
package cart

import (
	"math"

	"github.com/meridian-pos/meridian-pos/internal/store"
)

// Line stages one product in the cart.
type Line struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Qty       int     `json:"qty"`
}

// Cart accumulates lines for the active session.
type Cart struct {
	Lines []Line `json:"lines"`
}

// AddLine stages one unit of the product. Out-of-stock products are ignored;
// an existing line grows by one, capped at current stock.
func (c *Cart) AddLine(p store.Product) {
	if p.Stock == 0 {
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == p.ID {
			if c.Lines[i].Qty < p.Stock {
				c.Lines[i].Qty++
			}
			return
		}
	}
	c.Lines = append(c.Lines, Line{ProductID: p.ID, Name: p.Name, UnitPrice: p.Price, Qty: 1})
}

// SetQuantity updates a staged line. Zero or negative removes the line;
// anything above current stock is clamped to it. When stock itself has
// dropped to zero the clamp would leave a zero-quantity line, so the line is
// removed instead.
func (c *Cart) SetQuantity(productID string, qty, stock int) {
	for i := range c.Lines {
		if c.Lines[i].ProductID != productID {
			continue
		}
		if qty > stock {
			qty = stock
		}
		if qty <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
		c.Lines[i].Qty = qty
		return
	}
}

// Total sums line extensions, rounded to two decimals at read time so
// per-line rounding error never compounds.
func (c Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += float64(line.Qty) * line.UnitPrice
	}
	return math.Round(total*100) / 100
}

// Clear discards every staged line.
func (c *Cart) Clear() {
	c.Lines = nil
}
