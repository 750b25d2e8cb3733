package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/carelinkhq/patient-portal/internal/api/middleware"
	"github.com/carelinkhq/patient-portal/internal/domain/entities"
)

// ProfileService defines the interface for profile operations
type ProfileService interface {
	Get(ctx context.Context, sess *entities.Session) (*entities.Profile, error)
	Save(ctx context.Context, sess *entities.Session, profile *entities.Profile) (string, error)
}

// ProfileHandler handles the patient's contact details
type ProfileHandler struct {
	service  ProfileService
	validate *validator.Validate
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service, validate: validator.New()}
}

// Get handles GET /api/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	profile, err := h.service.Get(r.Context(), sess)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, profile)
}

// Save handles PUT /api/profile
func (h *ProfileHandler) Save(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	var profile entities.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(profile); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid phone or email format")
		return
	}

	message, err := h.service.Save(r.Context(), sess, &profile)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": message,
	})
}
