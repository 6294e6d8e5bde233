package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testState() State {
	return State{
		Products: []Product{
			{ID: "p1", Name: "Beans", Category: "Coffee", Price: 10, Stock: 5, CreatedAt: time.Now()},
		},
		Orders:         []Order{},
		Suppliers:      []Supplier{{ID: "s1", Name: "Roastery"}},
		PurchaseOrders: []PurchaseOrder{},
	}
}

func TestUpdateCommitsAndBumpsVersion(t *testing.T) {
	st := New(testState())

	err := st.Update(func(tx *Tx) error {
		p, ok := tx.Product("p1")
		require.True(t, ok)
		p.Stock = 3
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), st.Version())

	err = st.View(func(tx *Tx) error {
		p, ok := tx.Product("p1")
		require.True(t, ok)
		require.Equal(t, 3, p.Stock)
		return nil
	})
	require.NoError(t, err)
}

func TestUpdateRollsBackOnError(t *testing.T) {
	st := New(testState())
	boom := errors.New("boom")

	err := st.Update(func(tx *Tx) error {
		p, _ := tx.Product("p1")
		p.Stock = 0
		tx.PrependOrder(Order{ID: "o1"})
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, int64(0), st.Version())

	state := st.Current()
	require.Equal(t, 5, state.Products[0].Stock)
	require.Empty(t, state.Orders)
}

func TestListenersReceiveCommittedSnapshots(t *testing.T) {
	st := New(testState())

	var mu sync.Mutex
	var versions []int64
	var lastBlob []byte
	st.Subscribe(func(version int64, blob []byte) {
		mu.Lock()
		defer mu.Unlock()
		versions = append(versions, version)
		lastBlob = blob
	})

	require.NoError(t, st.Update(func(tx *Tx) error {
		tx.PrependProduct(Product{ID: "p2", Name: "Mug", Price: 9, Stock: 1})
		return nil
	}))
	require.Error(t, st.Update(func(tx *Tx) error {
		return errors.New("rejected")
	}))
	require.NoError(t, st.Update(func(tx *Tx) error {
		tx.AppendSupplier(Supplier{ID: "s2", Name: "Backup"})
		return nil
	}))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []int64{1, 2}, versions)

	restored := Decode(lastBlob)
	require.Len(t, restored.Products, 2)
	require.Len(t, restored.Suppliers, 2)
}

func TestCurrentReturnsDeepCopy(t *testing.T) {
	st := New(testState())
	require.NoError(t, st.Update(func(tx *Tx) error {
		tx.PrependOrder(Order{ID: "o1", Items: []OrderLine{{ProductID: "p1", Qty: 1}}})
		return nil
	}))

	snapshot := st.Current()
	snapshot.Products[0].Stock = 999
	snapshot.Orders[0].Items[0].Qty = 999

	state := st.Current()
	require.Equal(t, 5, state.Products[0].Stock)
	require.Equal(t, 1, state.Orders[0].Items[0].Qty)
}

func TestConcurrentUpdatesSerialize(t *testing.T) {
	st := New(testState())

	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = st.Update(func(tx *Tx) error {
				p, _ := tx.Product("p1")
				p.Stock++
				return nil
			})
		}()
	}
	wg.Wait()

	state := st.Current()
	require.Equal(t, 5+workers, state.Products[0].Stock)
	require.Equal(t, int64(workers), st.Version())
}
