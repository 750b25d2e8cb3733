package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carelinkhq/patient-portal/internal/api/middleware"
	"github.com/carelinkhq/patient-portal/internal/domain/entities"
)

type stubStore struct {
	sessions    map[string]*entities.Session
	recordLoads int
}

func (s *stubStore) Token(_ context.Context, sessionID string) (string, error) {
	if sess, ok := s.sessions[sessionID]; ok {
		return sess.Token, nil
	}
	return "", nil
}

func (s *stubStore) FindByID(_ context.Context, sessionID string) (*entities.Session, error) {
	s.recordLoads++
	return s.sessions[sessionID], nil
}

func guardedHandler(t *testing.T, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		sess := middleware.SessionFromContext(r.Context())
		assert.NotNil(t, sess)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_ValidCookie(t *testing.T) {
	store := &stubStore{sessions: map[string]*entities.Session{
		"sess-1": {ID: "sess-1", Token: "tok-abc", User: entities.User{ID: "u1"}},
	}}
	guard := middleware.AuthMiddleware(store, "portal_session")

	called := false
	req := httptest.NewRequest("GET", "/api/appointments", nil)
	req.AddCookie(&http.Cookie{Name: "portal_session", Value: "sess-1"})
	w := httptest.NewRecorder()

	guard(guardedHandler(t, &called)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestAuthMiddleware_BearerFallback(t *testing.T) {
	store := &stubStore{sessions: map[string]*entities.Session{
		"sess-1": {ID: "sess-1", Token: "tok-abc"},
	}}
	guard := middleware.AuthMiddleware(store, "portal_session")

	called := false
	req := httptest.NewRequest("GET", "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer sess-1")
	w := httptest.NewRecorder()

	guard(guardedHandler(t, &called)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestAuthMiddleware_NoSession(t *testing.T) {
	store := &stubStore{sessions: map[string]*entities.Session{}}
	guard := middleware.AuthMiddleware(store, "portal_session")

	called := false
	req := httptest.NewRequest("GET", "/api/appointments", nil)
	w := httptest.NewRecorder()

	guard(guardedHandler(t, &called)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called, "guarded content must not render without a session")

	var body map[string]string
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "/signin", body["redirect"])
}

func TestAuthMiddleware_UnknownSessionID(t *testing.T) {
	store := &stubStore{sessions: map[string]*entities.Session{}}
	guard := middleware.AuthMiddleware(store, "portal_session")

	called := false
	req := httptest.NewRequest("GET", "/api/appointments", nil)
	req.AddCookie(&http.Cookie{Name: "portal_session", Value: "expired"})
	w := httptest.NewRecorder()

	guard(guardedHandler(t, &called)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}

func TestAuthMiddleware_TokenlessSession(t *testing.T) {
	// A persisted sign-in failure record has an ID but no token; the guard
	// must reject it on the token check alone.
	store := &stubStore{sessions: map[string]*entities.Session{
		"sess-1": {ID: "sess-1", Token: "", Error: "Invalid credentials"},
	}}
	guard := middleware.AuthMiddleware(store, "portal_session")

	called := false
	req := httptest.NewRequest("GET", "/api/appointments", nil)
	req.AddCookie(&http.Cookie{Name: "portal_session", Value: "sess-1"})
	w := httptest.NewRecorder()

	guard(guardedHandler(t, &called)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
	assert.Zero(t, store.recordLoads, "a token-less session must be rejected without loading the record")
}
