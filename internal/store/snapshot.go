package store

import (
	"encoding/json"
)

// Snapshot is the persisted form of the engine state: four named collections
// keyed by their id fields. Field order is fixed so encoding is
// deterministic and round-trips byte-for-byte.
type Snapshot struct {
	Version        int64           `json:"version"`
	Products       []Product       `json:"products"`
	Orders         []Order         `json:"orders"`
	Suppliers      []Supplier      `json:"suppliers"`
	PurchaseOrders []PurchaseOrder `json:"purchaseOrders"`
}

// Encode serialises the state for the persistence collaborator.
func Encode(state State, version int64) ([]byte, error) {
	snap := Snapshot{
		Version:        version,
		Products:       emptyIfNil(state.Products),
		Orders:         emptyIfNil(state.Orders),
		Suppliers:      emptyIfNil(state.Suppliers),
		PurchaseOrders: emptyIfNil(state.PurchaseOrders),
	}
	return json.Marshal(snap)
}

type rawSnapshot struct {
	Version        int64           `json:"version"`
	Products       json.RawMessage `json:"products"`
	Orders         json.RawMessage `json:"orders"`
	Suppliers      json.RawMessage `json:"suppliers"`
	PurchaseOrders json.RawMessage `json:"purchaseOrders"`
}

// Decode rehydrates persisted state. Malformed input degrades to defaults
// instead of failing: when products or orders are absent or not sequences
// the seed catalog and an empty ledger are used; suppliers and purchase
// orders fall back independently even when products and orders are valid.
func Decode(blob []byte) State {
	var raw rawSnapshot
	if err := json.Unmarshal(blob, &raw); err != nil {
		return Seed()
	}

	// A nil slice after unmarshal means the field was absent or JSON null,
	// neither of which is a sequence, so it counts as malformed.
	var products []Product
	var orders []Order
	if err := json.Unmarshal(raw.Products, &products); err != nil || products == nil {
		return Seed()
	}
	if err := json.Unmarshal(raw.Orders, &orders); err != nil || orders == nil {
		return Seed()
	}

	state := State{Products: products, Orders: orders}

	var suppliers []Supplier
	if err := json.Unmarshal(raw.Suppliers, &suppliers); err == nil && suppliers != nil {
		state.Suppliers = suppliers
	} else {
		state.Suppliers = Seed().Suppliers
	}

	var pos []PurchaseOrder
	if err := json.Unmarshal(raw.PurchaseOrders, &pos); err == nil && pos != nil {
		state.PurchaseOrders = pos
	}
	return state
}

func emptyIfNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
