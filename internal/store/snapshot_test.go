package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	received := time.Date(2026, time.February, 2, 10, 0, 0, 0, time.UTC)
	state := State{
		Products: []Product{
			{ID: "p1", Name: "Beans", Category: "Coffee", Price: 18.5, Stock: 4, CreatedAt: received},
		},
		Orders: []Order{
			{ID: "o1", CreatedAt: received, Total: 37, CashierID: "u1", Items: []OrderLine{
				{ProductID: "p1", Name: "Beans", UnitPrice: 18.5, Qty: 2},
			}},
		},
		Suppliers: []Supplier{{ID: "s1", Name: "Roastery", Email: "a@b.example"}},
		PurchaseOrders: []PurchaseOrder{
			{ID: "po1", SupplierID: "s1", ProductID: "p1", Qty: 12, UnitCost: 11.47, Status: POStatusReceived, Source: POSourceAuto, CreatedAt: received, ReceivedAt: &received, CreatedBy: "u1"},
		},
	}

	blob, err := Encode(state, 9)
	require.NoError(t, err)

	restored := Decode(blob)
	require.Equal(t, state.Products, restored.Products)
	require.Equal(t, state.Orders, restored.Orders)
	require.Equal(t, state.Suppliers, restored.Suppliers)
	require.Equal(t, state.PurchaseOrders, restored.PurchaseOrders)
}

func TestEncodeIsDeterministic(t *testing.T) {
	state := Seed()
	a, err := Encode(state, 1)
	require.NoError(t, err)
	b, err := Encode(state, 1)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestDecodeMalformedBlobFallsBackToSeed(t *testing.T) {
	for _, blob := range [][]byte{
		nil,
		[]byte("not json"),
		[]byte(`{"version":1}`),
		[]byte(`{"version":1,"products":"nope","orders":[]}`),
		[]byte(`{"version":1,"products":[],"orders":{"bad":true}}`),
		[]byte(`{"version":1,"products":null,"orders":[]}`),
		[]byte(`{"version":1,"products":[],"orders":null}`),
	} {
		restored := Decode(blob)
		require.Equal(t, Seed(), restored, "blob %q", blob)
	}
}

func TestDecodeCollectionFallbacksAreIndependent(t *testing.T) {
	// Valid products and orders survive even when the other collections are
	// missing or malformed.
	restored := Decode([]byte(`{"version":3,"products":[],"orders":[],"suppliers":"bad"}`))
	require.Empty(t, restored.Products)
	require.Empty(t, restored.Orders)
	require.Equal(t, Seed().Suppliers, restored.Suppliers)
	require.Nil(t, restored.PurchaseOrders)

	restored = Decode([]byte(`{"version":3,"products":[],"orders":[],"suppliers":[],"purchaseOrders":[{"id":"po1","status":"PENDING"}]}`))
	require.Empty(t, restored.Suppliers)
	require.Len(t, restored.PurchaseOrders, 1)
	require.Equal(t, POStatusPending, restored.PurchaseOrders[0].Status)

	// JSON null is not a sequence, so it degrades the same way as a missing
	// or malformed collection.
	restored = Decode([]byte(`{"version":3,"products":[],"orders":[],"suppliers":null,"purchaseOrders":null}`))
	require.Empty(t, restored.Products)
	require.Equal(t, Seed().Suppliers, restored.Suppliers)
	require.Nil(t, restored.PurchaseOrders)
}

func TestSeedContainsLowStockCandidates(t *testing.T) {
	state := Seed()
	require.NotEmpty(t, state.Suppliers)

	low := 0
	for _, p := range state.Products {
		if p.Stock <= 10 {
			low++
		}
	}
	require.Equal(t, 2, low)
}
