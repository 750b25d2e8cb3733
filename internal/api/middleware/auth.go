package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/carelinkhq/patient-portal/internal/domain/entities"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionStore is the slice of the session repository the guard needs: the
// mirrored-token presence check and the full record load.
type SessionStore interface {
	Token(ctx context.Context, sessionID string) (string, error)
	FindByID(ctx context.Context, sessionID string) (*entities.Session, error)
}

// AuthMiddleware guards routes that require a signed-in patient. The session
// ID comes from the session cookie, with an Authorization bearer fallback for
// non-browser clients. The gate is the mirrored token key: absent or empty
// means 401 with a redirect hint, without touching the serialized session
// record. Only past the gate is the full record loaded for the handlers.
func AuthMiddleware(store SessionStore, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := sessionIDFromRequest(r, cookieName)
			if sessionID == "" {
				writeUnauthorized(w)
				return
			}

			token, err := store.Token(r.Context(), sessionID)
			if err != nil || token == "" {
				writeUnauthorized(w)
				return
			}

			sess, err := store.FindByID(r.Context(), sessionID)
			if err != nil || sess == nil {
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session stored by AuthMiddleware, or nil.
func SessionFromContext(ctx context.Context) *entities.Session {
	sess, _ := ctx.Value(sessionContextKey).(*entities.Session)
	return sess
}

// ContextWithSession attaches a session the way AuthMiddleware does.
func ContextWithSession(ctx context.Context, sess *entities.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

func sessionIDFromRequest(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error":    "authentication required",
		"redirect": "/signin",
	})
}
