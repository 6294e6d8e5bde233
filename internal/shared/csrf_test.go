package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureTokenIsStable(t *testing.T) {
	manager := NewCSRFManager("secret")
	sess := &Session{ID: "sess-1"}

	token, err := manager.EnsureToken(sess)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	again, err := manager.EnsureToken(sess)
	require.NoError(t, err)
	require.Equal(t, token, again)
}

func TestVerifyToken(t *testing.T) {
	manager := NewCSRFManager("secret")
	sess := &Session{ID: "sess-1"}
	token, err := manager.EnsureToken(sess)
	require.NoError(t, err)

	require.NoError(t, manager.VerifyToken(sess, token))
	require.ErrorIs(t, manager.VerifyToken(sess, "forged"), ErrCSRFTokenMismatch)
	require.ErrorIs(t, manager.VerifyToken(sess, ""), ErrCSRFTokenMissing)
	require.ErrorIs(t, manager.VerifyToken(nil, token), ErrCSRFTokenMissing)

	fresh := &Session{ID: "sess-2"}
	require.ErrorIs(t, manager.VerifyToken(fresh, token), ErrCSRFTokenMissing)
}
