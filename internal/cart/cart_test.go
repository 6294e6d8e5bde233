package cart

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridian-pos/meridian-pos/internal/store"
)

func TestAddLineStagesAndCaps(t *testing.T) {
	p := store.Product{ID: "p1", Name: "Beans", Price: 2.00, Stock: 5}

	var c Cart
	for i := 0; i < 4; i++ {
		c.AddLine(p)
	}
	require.Len(t, c.Lines, 1)
	require.Equal(t, 4, c.Lines[0].Qty)
	require.InDelta(t, 8.00, c.Total(), 1e-9)

	// Two more adds hit the stock cap of 5.
	c.AddLine(p)
	c.AddLine(p)
	require.Equal(t, 5, c.Lines[0].Qty)
}

func TestAddLineIgnoresOutOfStock(t *testing.T) {
	var c Cart
	c.AddLine(store.Product{ID: "p1", Name: "Beans", Price: 2, Stock: 0})
	require.Empty(t, c.Lines)
}

func TestAddLineSnapshotsPriceAndName(t *testing.T) {
	var c Cart
	c.AddLine(store.Product{ID: "p1", Name: "Beans", Price: 18.5, Stock: 3})
	require.Equal(t, "Beans", c.Lines[0].Name)
	require.InDelta(t, 18.5, c.Lines[0].UnitPrice, 1e-9)
}

func TestSetQuantity(t *testing.T) {
	var c Cart
	c.AddLine(store.Product{ID: "p1", Name: "Beans", Price: 2, Stock: 10})

	c.SetQuantity("p1", 7, 10)
	require.Equal(t, 7, c.Lines[0].Qty)

	// Above stock clamps.
	c.SetQuantity("p1", 40, 10)
	require.Equal(t, 10, c.Lines[0].Qty)

	// Unknown product is ignored.
	c.SetQuantity("missing", 3, 10)
	require.Len(t, c.Lines, 1)

	// Zero or negative removes the line.
	c.SetQuantity("p1", 0, 10)
	require.Empty(t, c.Lines)
}

func TestSetQuantityRemovesLineWhenStockIsGone(t *testing.T) {
	var c Cart
	c.AddLine(store.Product{ID: "p1", Name: "Beans", Price: 2, Stock: 10})

	// Live stock dropped to zero since the line was staged; a positive qty
	// must not survive as a zero-quantity line.
	c.SetQuantity("p1", 3, 0)
	require.Empty(t, c.Lines)
}

func TestTotalRoundsAtReadTime(t *testing.T) {
	c := Cart{Lines: []Line{
		{ProductID: "p1", UnitPrice: 0.1, Qty: 3},
		{ProductID: "p2", UnitPrice: 1.005, Qty: 1},
	}}
	require.InDelta(t, 1.31, c.Total(), 1e-9)
}

func TestClear(t *testing.T) {
	var c Cart
	c.AddLine(store.Product{ID: "p1", Name: "Beans", Price: 2, Stock: 5})
	c.Clear()
	require.Empty(t, c.Lines)
	require.Zero(t, c.Total())
}
