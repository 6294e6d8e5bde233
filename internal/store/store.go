// Package store owns the engine state: the four top-level collections and
// the transactional access path every mutation flows through.
package store

import (
	"sync"
)

// State groups the four collections. Products and orders are kept
// most-recent-first.
type State struct {
	Products       []Product
	Orders         []Order
	Suppliers      []Supplier
	PurchaseOrders []PurchaseOrder
}

func (s State) clone() State {
	out := State{
		Products:       append([]Product(nil), s.Products...),
		Suppliers:      append([]Supplier(nil), s.Suppliers...),
		PurchaseOrders: append([]PurchaseOrder(nil), s.PurchaseOrders...),
		Orders:         make([]Order, len(s.Orders)),
	}
	for i, o := range s.Orders {
		o.Items = append([]OrderLine(nil), o.Items...)
		out.Orders[i] = o
	}
	return out
}

// Listener receives the encoded snapshot after every committed update.
type Listener func(version int64, blob []byte)

// Store is the single writer for engine state. All reads go through View and
// all mutations through Update; mutations run against a working copy that is
// swapped in only when the closure succeeds, so a failed operation leaves no
// partial state behind.
type Store struct {
	mu        sync.RWMutex
	state     State
	version   int64
	listeners []Listener
}

// New returns a Store initialised with the given state.
func New(initial State) *Store {
	return &Store{state: initial}
}

// Tx exposes the collections to a transactional closure.
type Tx struct {
	state *State
}

// View runs fn with shared read access. The closure must not retain or
// mutate anything it reads.
func (s *Store) View(fn func(*Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state := s.state
	return fn(&Tx{state: &state})
}

// Update runs fn against a working copy of the state. On success the copy is
// committed, the version bumped, and listeners notified with the encoded
// snapshot. On error the store is untouched.
func (s *Store) Update(fn func(*Tx) error) error {
	s.mu.Lock()
	working := s.state.clone()
	if err := fn(&Tx{state: &working}); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = working
	s.version++
	version := s.version
	blob, err := Encode(s.state, version)
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	if err == nil {
		for _, fn := range listeners {
			fn(version, blob)
		}
	}
	return nil
}

// Subscribe registers a listener for committed updates. Listeners run
// synchronously after commit and must not call back into the store.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Current returns a deep copy of the state for read-side consumers that
// need the collections outside a View closure.
func (s *Store) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Version reports the number of committed updates since startup.
func (s *Store) Version() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Products returns the product list, most recent first.
func (tx *Tx) Products() []Product {
	return tx.state.Products
}

// Product finds a product by id. The returned pointer addresses live state
// and is only valid inside the closure.
func (tx *Tx) Product(id string) (*Product, bool) {
	for i := range tx.state.Products {
		if tx.state.Products[i].ID == id {
			return &tx.state.Products[i], true
		}
	}
	return nil, false
}

// PrependProduct inserts a product at the head of the catalog.
func (tx *Tx) PrependProduct(p Product) {
	tx.state.Products = append([]Product{p}, tx.state.Products...)
}

// Orders returns the sales ledger, most recent first.
func (tx *Tx) Orders() []Order {
	return tx.state.Orders
}

// Order finds an order by id.
func (tx *Tx) Order(id string) (Order, bool) {
	for _, o := range tx.state.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

// PrependOrder appends a committed sale to the head of the ledger.
func (tx *Tx) PrependOrder(o Order) {
	tx.state.Orders = append([]Order{o}, tx.state.Orders...)
}

// Suppliers returns the supplier registry in creation order.
func (tx *Tx) Suppliers() []Supplier {
	return tx.state.Suppliers
}

// Supplier finds a supplier by id.
func (tx *Tx) Supplier(id string) (*Supplier, bool) {
	for i := range tx.state.Suppliers {
		if tx.state.Suppliers[i].ID == id {
			return &tx.state.Suppliers[i], true
		}
	}
	return nil, false
}

// AppendSupplier adds a supplier to the registry.
func (tx *Tx) AppendSupplier(s Supplier) {
	tx.state.Suppliers = append(tx.state.Suppliers, s)
}

// PurchaseOrders returns the purchase order list in creation order.
func (tx *Tx) PurchaseOrders() []PurchaseOrder {
	return tx.state.PurchaseOrders
}

// PurchaseOrder finds a purchase order by id.
func (tx *Tx) PurchaseOrder(id string) (*PurchaseOrder, bool) {
	for i := range tx.state.PurchaseOrders {
		if tx.state.PurchaseOrders[i].ID == id {
			return &tx.state.PurchaseOrders[i], true
		}
	}
	return nil, false
}

// AppendPurchaseOrder adds a purchase order.
func (tx *Tx) AppendPurchaseOrder(po PurchaseOrder) {
	tx.state.PurchaseOrders = append(tx.state.PurchaseOrders, po)
}
