package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/carelinkhq/patient-portal/internal/api/middleware"
	"github.com/carelinkhq/patient-portal/internal/application/services"
	"github.com/carelinkhq/patient-portal/internal/domain/entities"
)

// maxReportSize caps the uploaded report file at 10 MiB.
const maxReportSize = 10 << 20

// BookingService defines the interface for booking draft operations
type BookingService interface {
	StartDraft(ctx context.Context, sess *entities.Session) services.DraftView
	Draft(sessionID string) services.DraftView
	SelectDepartment(sessionID, department string) services.DraftView
	SelectDoctor(ctx context.Context, sess *entities.Session, doctorID string) (services.DraftView, error)
	SelectDate(sessionID, date string) (services.DraftView, error)
	SelectTime(sessionID, slotTime string) (services.DraftView, error)
	SetComments(sessionID, text string) services.DraftView
	Attach(sessionID string, att *entities.Attachment) services.DraftView
	Discard(sessionID string)
	Submit(ctx context.Context, sess *entities.Session) (*services.SubmitResult, error)
}

// BookingHandler handles booking draft requests
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type selectionRequest struct {
	Department string `json:"department"`
	DoctorID   string `json:"doctorId"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Comments   string `json:"comments"`
}

// StartDraft handles GET /api/booking/draft. The fresh query parameter forces
// a new draft with a reloaded doctor list, which is what opening the booking
// page does; without it the current draft is returned as-is.
func (h *BookingHandler) StartDraft(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	var view services.DraftView
	if r.URL.Query().Get("fresh") == "false" {
		view = h.service.Draft(sess.ID)
	} else {
		view = h.service.StartDraft(r.Context(), sess)
	}
	respondWithJSON(w, http.StatusOK, view)
}

// SelectDepartment handles POST /api/booking/department
func (h *BookingHandler) SelectDepartment(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	req, ok := decodeSelection(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.service.SelectDepartment(sess.ID, req.Department))
}

// SelectDoctor handles POST /api/booking/doctor
func (h *BookingHandler) SelectDoctor(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	req, ok := decodeSelection(w, r)
	if !ok {
		return
	}
	view, err := h.service.SelectDoctor(r.Context(), sess, req.DoctorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// SelectDate handles POST /api/booking/date
func (h *BookingHandler) SelectDate(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	req, ok := decodeSelection(w, r)
	if !ok {
		return
	}
	view, err := h.service.SelectDate(sess.ID, req.Date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// SelectTime handles POST /api/booking/time
func (h *BookingHandler) SelectTime(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	req, ok := decodeSelection(w, r)
	if !ok {
		return
	}
	view, err := h.service.SelectTime(sess.ID, req.Time)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// SetComments handles POST /api/booking/comments
func (h *BookingHandler) SetComments(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	req, ok := decodeSelection(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.service.SetComments(sess.ID, req.Comments))
}

// Attach handles POST /api/booking/attachment with a multipart report file
func (h *BookingHandler) Attach(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	if err := r.ParseMultipartForm(maxReportSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid multipart payload")
		return
	}
	file, header, err := r.FormFile("report")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "report file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxReportSize))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "failed to read report file")
		return
	}

	view := h.service.Attach(sess.ID, &entities.Attachment{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	respondWithJSON(w, http.StatusOK, view)
}

// Submit handles POST /api/booking/submit
func (h *BookingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	result, err := h.service.Submit(r.Context(), sess)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// Discard handles DELETE /api/booking/draft
func (h *BookingHandler) Discard(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	h.service.Discard(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

func decodeSelection(w http.ResponseWriter, r *http.Request) (selectionRequest, bool) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return req, false
	}
	return req, true
}
