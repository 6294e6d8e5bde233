package cart

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridian-pos/meridian-pos/internal/shared"
	"github.com/meridian-pos/meridian-pos/internal/store"
)

func TestSessionRoundTrip(t *testing.T) {
	sess := &shared.Session{}

	var c Cart
	c.AddLine(store.Product{ID: "p1", Name: "Beans", Price: 2, Stock: 5})
	ToSession(sess, c)

	restored := FromSession(sess)
	require.Equal(t, c.Lines, restored.Lines)
}

func TestSessionEmptyCartClearsKey(t *testing.T) {
	sess := &shared.Session{}

	var c Cart
	c.AddLine(store.Product{ID: "p1", Name: "Beans", Price: 2, Stock: 5})
	ToSession(sess, c)

	c.Clear()
	ToSession(sess, c)
	require.Empty(t, FromSession(sess).Lines)
}

func TestSessionUnreadablePayload(t *testing.T) {
	sess := &shared.Session{}
	sess.Set(sessionKey, "{broken")
	require.Empty(t, FromSession(sess).Lines)

	require.Empty(t, FromSession(nil).Lines)
}
