// Package procurement owns purchase orders, their Pending to Received
// lifecycle, and the reorder suggestion heuristic.
package procurement

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-pos/meridian-pos/internal/shared"
	"github.com/meridian-pos/meridian-pos/internal/store"
)

// Reorder heuristic. A product is eligible when stock is at or below the
// low-stock threshold and no Pending purchase order references it yet.
const (
	lowStockThreshold = 10
	minReorderQty     = 12
	targetStockLevel  = 30
	suggestCostFactor = 0.62
)

// errNoChange aborts an Update closure that turned out to be a no-op, so no
// snapshot is published for state that did not move.
var errNoChange = errors.New("procurement: no change")

// Service exposes procurement operations over the state owner.
type Service struct {
	store *store.Store
}

// NewService constructs a procurement Service.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// CreateManual registers a Pending purchase order entered by hand.
// A negative unit cost is coerced to zero rather than rejected.
func (s *Service) CreateManual(supplierID, productID string, qty int, unitCost float64, createdBy string) (store.PurchaseOrder, error) {
	if supplierID == "" || productID == "" {
		return store.PurchaseOrder{}, fmt.Errorf("procurement: supplier and product required: %w", shared.ErrValidation)
	}
	if qty <= 0 {
		return store.PurchaseOrder{}, fmt.Errorf("procurement: quantity must be positive: %w", shared.ErrValidation)
	}
	if unitCost < 0 {
		unitCost = 0
	}

	po := store.PurchaseOrder{
		ID:         uuid.NewString(),
		SupplierID: supplierID,
		ProductID:  productID,
		Qty:        qty,
		UnitCost:   unitCost,
		Status:     store.POStatusPending,
		Source:     store.POSourceManual,
		CreatedAt:  time.Now(),
		CreatedBy:  createdBy,
	}
	err := s.store.Update(func(tx *store.Tx) error {
		if _, ok := tx.Supplier(supplierID); !ok {
			return fmt.Errorf("procurement: supplier %s: %w", supplierID, shared.ErrValidation)
		}
		if _, ok := tx.Product(productID); !ok {
			return fmt.Errorf("procurement: product %s: %w", productID, shared.ErrValidation)
		}
		tx.AppendPurchaseOrder(po)
		return nil
	})
	if err != nil {
		return store.PurchaseOrder{}, err
	}
	return po, nil
}

// Receive transitions a Pending purchase order to Received and credits the
// product's stock by the ordered quantity, in one atomic step. Receiving an
// already-Received order is a no-op so stock is never credited twice.
func (s *Service) Receive(poID string) (store.PurchaseOrder, error) {
	var out store.PurchaseOrder
	err := s.store.Update(func(tx *store.Tx) error {
		po, ok := tx.PurchaseOrder(poID)
		if !ok {
			return fmt.Errorf("procurement: purchase order %s: %w", poID, shared.ErrNotFound)
		}
		if po.Status != store.POStatusPending {
			out = *po
			return errNoChange
		}
		now := time.Now()
		po.Status = store.POStatusReceived
		po.ReceivedAt = &now
		if p, ok := tx.Product(po.ProductID); ok {
			p.Stock += po.Qty
		}
		out = *po
		return nil
	})
	if errors.Is(err, errNoChange) {
		err = nil
	}
	return out, err
}

// SuggestReorders synthesizes Pending purchase orders for every low-stock
// product not already covered by one, assigned to the first registered
// supplier. Returns the created orders; empty when no supplier is registered
// or no product is eligible. Re-invoking is idempotent because each
// suggestion leaves a Pending order that excludes its product.
func (s *Service) SuggestReorders(createdBy string) ([]store.PurchaseOrder, error) {
	var created []store.PurchaseOrder
	err := s.store.Update(func(tx *store.Tx) error {
		suppliers := tx.Suppliers()
		if len(suppliers) == 0 {
			return errNoChange
		}
		supplierID := suppliers[0].ID

		pending := make(map[string]bool)
		for _, po := range tx.PurchaseOrders() {
			if po.Status == store.POStatusPending {
				pending[po.ProductID] = true
			}
		}

		now := time.Now()
		for _, p := range tx.Products() {
			if p.Stock > lowStockThreshold || pending[p.ID] {
				continue
			}
			qty := targetStockLevel - p.Stock
			if qty < minReorderQty {
				qty = minReorderQty
			}
			po := store.PurchaseOrder{
				ID:         uuid.NewString(),
				SupplierID: supplierID,
				ProductID:  p.ID,
				Qty:        qty,
				UnitCost:   math.Round(p.Price*suggestCostFactor*100) / 100,
				Status:     store.POStatusPending,
				Source:     store.POSourceAuto,
				CreatedAt:  now,
				CreatedBy:  createdBy,
			}
			tx.AppendPurchaseOrder(po)
			created = append(created, po)
		}
		if len(created) == 0 {
			return errNoChange
		}
		return nil
	})
	if err != nil && !errors.Is(err, errNoChange) {
		return nil, err
	}
	return created, nil
}

// Get returns the purchase order with the given id.
func (s *Service) Get(poID string) (store.PurchaseOrder, error) {
	var out store.PurchaseOrder
	err := s.store.View(func(tx *store.Tx) error {
		po, ok := tx.PurchaseOrder(poID)
		if !ok {
			return fmt.Errorf("procurement: purchase order %s: %w", poID, shared.ErrNotFound)
		}
		out = *po
		return nil
	})
	return out, err
}

// List returns every purchase order in creation order.
func (s *Service) List() []store.PurchaseOrder {
	var out []store.PurchaseOrder
	_ = s.store.View(func(tx *store.Tx) error {
		out = append(out, tx.PurchaseOrders()...)
		return nil
	})
	return out
}
