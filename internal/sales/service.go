// Package sales owns the append-only order ledger and the checkout
// transaction that feeds it.
package sales

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-pos/meridian-pos/internal/cart"
	"github.com/meridian-pos/meridian-pos/internal/shared"
	"github.com/meridian-pos/meridian-pos/internal/store"
)

// Service exposes ledger operations over the state owner.
type Service struct {
	store *store.Store
}

// NewService constructs a sales Service.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Checkout commits the staged cart as one atomic transaction: every line is
// validated against live stock before anything mutates, so a conflict on any
// line rejects the whole checkout with zero effect. On success each product's
// stock drops by its line quantity and the immutable order lands at the head
// of the ledger.
func (s *Service) Checkout(c cart.Cart, cashierID string) (store.Order, error) {
	if len(c.Lines) == 0 {
		return store.Order{}, fmt.Errorf("sales: cart is empty: %w", shared.ErrValidation)
	}

	order := store.Order{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Total:     c.Total(),
		CashierID: cashierID,
		Items:     make([]store.OrderLine, 0, len(c.Lines)),
	}

	err := s.store.Update(func(tx *store.Tx) error {
		// Validate against the total demand per product, not per line, so a
		// cart holding two lines for the same product cannot slip past stock.
		required := make(map[string]int, len(c.Lines))
		for _, line := range c.Lines {
			required[line.ProductID] += line.Qty
		}
		for _, line := range c.Lines {
			p, ok := tx.Product(line.ProductID)
			if !ok {
				return fmt.Errorf("sales: product %s: %w", line.ProductID, shared.ErrNotFound)
			}
			if required[line.ProductID] > p.Stock {
				return fmt.Errorf("sales: %s has %d in stock, %d requested: %w", p.Name, p.Stock, required[line.ProductID], shared.ErrStockConflict)
			}
		}
		for _, line := range c.Lines {
			p, _ := tx.Product(line.ProductID)
			p.Stock -= line.Qty
			order.Items = append(order.Items, store.OrderLine{
				ProductID: line.ProductID,
				Name:      line.Name,
				UnitPrice: line.UnitPrice,
				Qty:       line.Qty,
			})
		}
		tx.PrependOrder(order)
		return nil
	})
	if err != nil {
		return store.Order{}, err
	}
	return order, nil
}

// Get returns the order with the given id.
func (s *Service) Get(orderID string) (store.Order, error) {
	var out store.Order
	err := s.store.View(func(tx *store.Tx) error {
		o, ok := tx.Order(orderID)
		if !ok {
			return fmt.Errorf("sales: order %s: %w", orderID, shared.ErrNotFound)
		}
		out = o
		return nil
	})
	return out, err
}

// List returns the ledger, most recent first.
func (s *Service) List() []store.Order {
	var out []store.Order
	_ = s.store.View(func(tx *store.Tx) error {
		out = append(out, tx.Orders()...)
		return nil
	})
	return out
}
