package store

import "time"

// POStatus enumerates the purchase order lifecycle states.
type POStatus string

const (
	// POStatusPending marks a purchase order awaiting receipt.
	POStatusPending POStatus = "PENDING"
	// POStatusReceived is terminal; a received order is never reverted.
	POStatusReceived POStatus = "RECEIVED"
)

// POSource records how a purchase order came to exist.
type POSource string

const (
	POSourceManual POSource = "MANUAL"
	POSourceAuto   POSource = "AUTO"
)

// Product is a catalog entry. Stock never goes below zero.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
}

// Supplier is a registry entry, mutated only by full replacement.
type Supplier struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// OrderLine snapshots a product at checkout time.
type OrderLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Qty       int     `json:"qty"`
}

// Order is an immutable, committed sale.
type Order struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Total     float64     `json:"total"`
	CashierID string      `json:"cashier_id"`
	Items     []OrderLine `json:"items"`
}

// PurchaseOrder tracks a replenishment request against a supplier.
type PurchaseOrder struct {
	ID         string     `json:"id"`
	SupplierID string     `json:"supplier_id"`
	ProductID  string     `json:"product_id"`
	Qty        int        `json:"qty"`
	UnitCost   float64    `json:"unit_cost"`
	Status     POStatus   `json:"status"`
	Source     POSource   `json:"source"`
	CreatedAt  time.Time  `json:"created_at"`
	ReceivedAt *time.Time `json:"received_at,omitempty"`
	CreatedBy  string     `json:"created_by"`
}
