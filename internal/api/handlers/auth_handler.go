package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/carelinkhq/patient-portal/internal/api/middleware"
	"github.com/carelinkhq/patient-portal/internal/domain/entities"
	apperrors "github.com/carelinkhq/patient-portal/pkg/errors"
)

// AuthService defines the interface for session operations
type AuthService interface {
	SignIn(ctx context.Context, sessionID, email, password string) (*entities.Session, error)
	SignUp(ctx context.Context, name, email, password string) (string, error)
	SignOut(ctx context.Context, sessionID string) error
}

// AuthHandler handles sign-in, sign-up and session requests
type AuthHandler struct {
	service    AuthService
	validate   *validator.Validate
	cookieName string
	sessionTTL time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service AuthService, cookieName string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		service:    service,
		validate:   validator.New(),
		cookieName: cookieName,
		sessionTTL: sessionTTL,
	}
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signUpRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignIn handles POST /api/auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var prior string
	if cookie, err := r.Cookie(h.cookieName); err == nil {
		prior = cookie.Value
	}

	sess, err := h.service.SignIn(r.Context(), prior, req.Email, req.Password)
	if sess != nil {
		// Set on failure too: the token-less record carries the failure
		// message, and a retry reuses the same session ID.
		http.SetCookie(w, &http.Cookie{
			Name:     h.cookieName,
			Value:    sess.ID,
			Path:     "/",
			MaxAge:   int(h.sessionTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user": sess.User,
	})
}

// SignUp handles POST /api/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "name, email and a password of at least 6 characters are required")
		return
	}

	message, err := h.service.SignUp(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"message": message,
	})
}

// Session handles GET /api/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		respondWithError(w, http.StatusUnauthorized, "no active session")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user": sess.User,
	})
}

// SignOut handles DELETE /api/session. Clearing an absent session succeeds:
// the home page issues this call on every visit, signed in or not.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.cookieName)
	if err == nil && cookie.Value != "" {
		if err := h.service.SignOut(r.Context(), cookie.Value); err != nil {
			writeServiceError(w, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// writeServiceError maps a service error onto its HTTP status.
func writeServiceError(w http.ResponseWriter, err error) {
	message := apperrors.MessageOf(err, "internal server error")
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeValidation:
		respondWithError(w, http.StatusBadRequest, message)
	case apperrors.ErrorTypeUnauthorized:
		respondWithError(w, http.StatusUnauthorized, message)
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, message)
	case apperrors.ErrorTypeExternal:
		respondWithError(w, http.StatusBadGateway, message)
	case apperrors.ErrorTypeUnavailable:
		respondWithError(w, http.StatusServiceUnavailable, message)
	default:
		respondWithError(w, http.StatusInternalServerError, message)
	}
}
