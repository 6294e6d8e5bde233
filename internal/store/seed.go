package store

import "time"

// Seed returns the built-in starter state used when no valid persisted
// snapshot exists: a small catalog, one supplier, empty ledgers.
func Seed() State {
	created := time.Date(2026, time.January, 1, 9, 0, 0, 0, time.UTC)
	return State{
		Products: []Product{
			{ID: "seed-espresso", Name: "Espresso Beans 1kg", Category: "Coffee", Price: 18.50, Stock: 24, CreatedAt: created},
			{ID: "seed-filter", Name: "Filter Papers 100pk", Category: "Brewing", Price: 4.20, Stock: 40, CreatedAt: created},
			{ID: "seed-mug", Name: "Ceramic Mug 350ml", Category: "Drinkware", Price: 9.00, Stock: 15, CreatedAt: created},
			{ID: "seed-grinder", Name: "Hand Grinder", Category: "Brewing", Price: 32.00, Stock: 6, CreatedAt: created},
			{ID: "seed-syrup", Name: "Vanilla Syrup 750ml", Category: "Coffee", Price: 7.80, Stock: 9, CreatedAt: created},
		},
		Orders: []Order{},
		Suppliers: []Supplier{
			{ID: "seed-roastery", Name: "Harbor Roastery", Contact: "Mika Tan", Email: "orders@harborroastery.example", Phone: "+1-555-0134"},
		},
		PurchaseOrders: []PurchaseOrder{},
	}
}
