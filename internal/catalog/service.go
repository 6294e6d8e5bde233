// Package catalog owns the product collection: creation, stock adjustments,
// and lookups used by every other component.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-pos/meridian-pos/internal/shared"
	"github.com/meridian-pos/meridian-pos/internal/store"
)

// errNoChange aborts an Update closure that turned out to be a no-op, so no
// snapshot is published for state that did not move.
var errNoChange = errors.New("catalog: no change")

// Service exposes catalog operations over the state owner.
type Service struct {
	store *store.Store
}

// NewService constructs a catalog Service.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Create adds a product to the catalog, most recent first.
func (s *Service) Create(name, category string, price float64, stock int) (store.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return store.Product{}, fmt.Errorf("catalog: name required: %w", shared.ErrValidation)
	}
	if price <= 0 {
		return store.Product{}, fmt.Errorf("catalog: price must be positive: %w", shared.ErrValidation)
	}
	if stock < 0 {
		return store.Product{}, fmt.Errorf("catalog: stock must not be negative: %w", shared.ErrValidation)
	}

	product := store.Product{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  strings.TrimSpace(category),
		Price:     price,
		Stock:     stock,
		CreatedAt: time.Now(),
	}
	err := s.store.Update(func(tx *store.Tx) error {
		tx.PrependProduct(product)
		return nil
	})
	if err != nil {
		return store.Product{}, err
	}
	return product, nil
}

// AdjustStock applies a signed delta, clamping the result at zero.
// A zero delta or an unknown product id is a silent no-op.
func (s *Service) AdjustStock(productID string, delta int) error {
	if delta == 0 {
		return nil
	}
	err := s.store.Update(func(tx *store.Tx) error {
		p, ok := tx.Product(productID)
		if !ok {
			return errNoChange
		}
		p.Stock += delta
		if p.Stock < 0 {
			p.Stock = 0
		}
		return nil
	})
	if errors.Is(err, errNoChange) {
		return nil
	}
	return err
}

// Get returns the product with the given id.
func (s *Service) Get(productID string) (store.Product, error) {
	var out store.Product
	err := s.store.View(func(tx *store.Tx) error {
		p, ok := tx.Product(productID)
		if !ok {
			return fmt.Errorf("catalog: product %s: %w", productID, shared.ErrNotFound)
		}
		out = *p
		return nil
	})
	return out, err
}

// List returns the catalog, most recent first.
func (s *Service) List() []store.Product {
	var out []store.Product
	_ = s.store.View(func(tx *store.Tx) error {
		out = append(out, tx.Products()...)
		return nil
	})
	return out
}
