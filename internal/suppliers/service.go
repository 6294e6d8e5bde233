// Package suppliers owns the supplier registry. Entries are immutable once
// created except by full replacement; there is no deletion path.
package suppliers

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/meridian-pos/meridian-pos/internal/shared"
	"github.com/meridian-pos/meridian-pos/internal/store"
)

// Service exposes registry operations over the state owner.
type Service struct {
	store *store.Store
}

// NewService constructs a suppliers Service.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Create registers a supplier.
func (s *Service) Create(name, contact, email, phone string) (store.Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return store.Supplier{}, fmt.Errorf("suppliers: name required: %w", shared.ErrValidation)
	}
	supplier := store.Supplier{
		ID:      uuid.NewString(),
		Name:    name,
		Contact: strings.TrimSpace(contact),
		Email:   strings.TrimSpace(email),
		Phone:   strings.TrimSpace(phone),
	}
	err := s.store.Update(func(tx *store.Tx) error {
		tx.AppendSupplier(supplier)
		return nil
	})
	if err != nil {
		return store.Supplier{}, err
	}
	return supplier, nil
}

// Replace swaps every field of an existing supplier, keeping its id.
func (s *Service) Replace(id, name, contact, email, phone string) (store.Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return store.Supplier{}, fmt.Errorf("suppliers: name required: %w", shared.ErrValidation)
	}
	var out store.Supplier
	err := s.store.Update(func(tx *store.Tx) error {
		existing, ok := tx.Supplier(id)
		if !ok {
			return fmt.Errorf("suppliers: supplier %s: %w", id, shared.ErrNotFound)
		}
		*existing = store.Supplier{
			ID:      id,
			Name:    name,
			Contact: strings.TrimSpace(contact),
			Email:   strings.TrimSpace(email),
			Phone:   strings.TrimSpace(phone),
		}
		out = *existing
		return nil
	})
	return out, err
}

// Get returns the supplier with the given id.
func (s *Service) Get(id string) (store.Supplier, error) {
	var out store.Supplier
	err := s.store.View(func(tx *store.Tx) error {
		sup, ok := tx.Supplier(id)
		if !ok {
			return fmt.Errorf("suppliers: supplier %s: %w", id, shared.ErrNotFound)
		}
		out = *sup
		return nil
	})
	return out, err
}

// List returns the registry in creation order.
func (s *Service) List() []store.Supplier {
	var out []store.Supplier
	_ = s.store.View(func(tx *store.Tx) error {
		out = append(out, tx.Suppliers()...)
		return nil
	})
	return out
}
