package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/carelinkhq/patient-portal/internal/api/middleware"
	"github.com/carelinkhq/patient-portal/internal/application/services"
	"github.com/carelinkhq/patient-portal/internal/domain/entities"
)

// AppointmentsService defines the interface for appointment list operations
type AppointmentsService interface {
	List(ctx context.Context, sess *entities.Session, yearFilter string) (*services.AppointmentList, error)
	Join(ctx context.Context, sess *entities.Session, appointmentID string) (string, error)
}

// AppointmentsHandler handles the patient's appointment list
type AppointmentsHandler struct {
	service AppointmentsService
}

// NewAppointmentsHandler creates a new appointments handler
func NewAppointmentsHandler(service AppointmentsService) *AppointmentsHandler {
	return &AppointmentsHandler{service: service}
}

// List handles GET /api/appointments
func (h *AppointmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	list, err := h.service.List(r.Context(), sess, r.URL.Query().Get("year"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

type joinRequest struct {
	AppointmentID string `json:"appointmentId"`
}

// Join handles POST /api/appointments/join
func (h *AppointmentsHandler) Join(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.AppointmentID == "" {
		respondWithError(w, http.StatusBadRequest, "appointmentId is required")
		return
	}

	message, err := h.service.Join(r.Context(), sess, req.AppointmentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": message,
	})
}
