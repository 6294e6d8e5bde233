package auth

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/meridian-pos/meridian-pos/internal/shared"
)

func testRouter(t *testing.T) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, testService(t), shared.NewSessionManager(nil, "test_session", 0, false), shared.NewCSRFManager("test-secret"))
	r := chi.NewRouter()
	r.Route("/auth", handler.MountRoutes)
	return r
}

func withSession(r *http.Request, sess *shared.Session) *http.Request {
	return r.WithContext(shared.ContextWithSession(r.Context(), sess))
}

func TestLoginIssuesSessionAndToken(t *testing.T) {
	router := testRouter(t)
	sess := &shared.Session{ID: "sess-1"}

	body := strings.NewReader(`{"email":"owner@meridian.local","password":"secret-admin"}`)
	req := withSession(httptest.NewRequest(http.MethodPost, "/auth/login", body), sess)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		UserID    string `json:"user_id"`
		Name      string `json:"name"`
		Role      string `json:"role"`
		CSRFToken string `json:"csrf_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "user-admin", resp.UserID)
	require.Equal(t, RoleAdmin, resp.Role)
	require.NotEmpty(t, resp.CSRFToken)

	require.Equal(t, "user-admin", sess.User())
	require.Equal(t, RoleAdmin, sess.Role())
	require.Equal(t, resp.CSRFToken, sess.Get(shared.CSRFSessionKey))
}

func TestLoginRejectsBadPassword(t *testing.T) {
	router := testRouter(t)

	body := strings.NewReader(`{"email":"owner@meridian.local","password":"wrong"}`)
	req := withSession(httptest.NewRequest(http.MethodPost, "/auth/login", body), &shared.Session{ID: "sess-1"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginValidatesPayload(t *testing.T) {
	router := testRouter(t)

	for _, body := range []string{
		`{"email":"not-an-email","password":"x"}`,
		`{"email":"owner@meridian.local"}`,
		`{broken`,
	} {
		req := withSession(httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body)), &shared.Session{ID: "s"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestSessionEndpoint(t *testing.T) {
	router := testRouter(t)

	// Anonymous session.
	req := withSession(httptest.NewRequest(http.MethodGet, "/auth/session", nil), &shared.Session{ID: "s"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Signed-in session.
	sess := &shared.Session{ID: "s"}
	sess.SetUser("user-cashier", RoleCashier)
	req = withSession(httptest.NewRequest(http.MethodGet, "/auth/session", nil), sess)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"user_id":"user-cashier"`)
}

func TestRequireRole(t *testing.T) {
	protected := RequireRole(RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// No session at all.
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Signed in with the wrong role.
	sess := &shared.Session{ID: "s"}
	sess.SetUser("user-cashier", RoleCashier)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodGet, "/", nil), sess))
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Admin passes.
	sess = &shared.Session{ID: "s"}
	sess.SetUser("user-admin", RoleAdmin)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodGet, "/", nil), sess))
	require.Equal(t, http.StatusOK, rec.Code)
}
