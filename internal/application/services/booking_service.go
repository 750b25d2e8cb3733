package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/carelinkhq/patient-portal/internal/domain/booking"
	"github.com/carelinkhq/patient-portal/internal/domain/entities"
	"github.com/carelinkhq/patient-portal/internal/domain/providers"
	apperrors "github.com/carelinkhq/patient-portal/pkg/errors"
)

// BookingService bridges the draft state machine to the upstream API. Every
// user selection becomes a named transition; transitions that need upstream
// data (the doctor list, a doctor's slots) trigger the matching fetch and
// merge the result back into the draft.
type BookingService struct {
	api    providers.HealthAPI
	drafts *draftStore
	now    func() time.Time
}

// NewBookingService creates a booking flow controller.
func NewBookingService(api providers.HealthAPI) *BookingService {
	return &BookingService{
		api:    api,
		drafts: newDraftStore(),
		now:    time.Now,
	}
}

// DraftView is the draft prepared for rendering: the doctor selector holds
// only the chosen department's doctors, booked slots are gone, past slots are
// disabled, and MinDate carries the presentation-layer date floor.
type DraftView struct {
	booking.Draft
	DoctorOptions []entities.Doctor    `json:"doctorOptions"`
	SlotOptions   []booking.SlotOption `json:"slotOptions"`
	MinDate       string               `json:"minDate"`
}

// SubmitResult reports a successful booking.
type SubmitResult struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

// StartDraft creates a fresh draft for the session and loads the doctor list.
// A failed doctor fetch is logged and leaves the list empty; the form still
// renders, with the doctor selector effectively disabled.
func (s *BookingService) StartDraft(ctx context.Context, sess *entities.Session) DraftView {
	d := booking.Draft{}
	doctors, err := s.api.ListDoctors(ctx, sess.Token)
	if err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("doctor list fetch failed; booking form will have no doctors")
	} else {
		d = booking.Apply(d, booking.SetDoctors{Doctors: doctors})
	}
	s.drafts.put(sess.ID, d)
	return s.view(d)
}

// Draft returns the session's current draft, creating an empty one if the
// booking view was never started.
func (s *BookingService) Draft(sessionID string) DraftView {
	d, ok := s.drafts.get(sessionID)
	if !ok {
		d = booking.Draft{}
		s.drafts.put(sessionID, d)
	}
	return s.view(d)
}

// SelectDepartment sets the department, clearing every downstream selection.
func (s *BookingService) SelectDepartment(sessionID, department string) DraftView {
	d := s.drafts.update(sessionID, func(cur booking.Draft) booking.Draft {
		return booking.Apply(cur, booking.SetDepartment{Department: department})
	})
	return s.view(d)
}

// SelectDoctor sets the doctor and, for a non-empty selection, fetches that
// doctor's slots and caches the full doctor record. Each selection carries a
// fresh fetch token; a slot response that lands after a newer selection is
// discarded by the state machine's token check.
func (s *BookingService) SelectDoctor(ctx context.Context, sess *entities.Session, doctorID string) (DraftView, error) {
	if doctorID == "" {
		d := s.drafts.update(sess.ID, func(cur booking.Draft) booking.Draft {
			cur = booking.Apply(cur, booking.SetDoctorID{})
			cur.Doctor = nil
			return cur
		})
		return s.view(d), nil
	}

	token := uuid.NewString()
	s.drafts.update(sess.ID, func(cur booking.Draft) booking.Draft {
		return booking.Apply(cur, booking.SetDoctorID{DoctorID: doctorID, FetchToken: token})
	})

	slots, err := s.api.AvailableSlots(ctx, sess.Token, doctorID)
	if err != nil {
		d, _ := s.drafts.get(sess.ID)
		return s.view(d), err
	}

	d := s.drafts.update(sess.ID, func(cur booking.Draft) booking.Draft {
		cur = booking.Apply(cur, booking.SetAvailableSlots{Slots: slots, FetchToken: token})
		if doc, ok := entities.FindDoctor(cur.Doctors, doctorID); ok {
			cur = booking.Apply(cur, booking.SetSelectedDoctor{Doctor: doc, FetchToken: token})
		}
		return cur
	})
	return s.view(d), nil
}

// SelectDate sets the appointment date. Dates before the current calendar day
// are rejected before any transition is dispatched.
func (s *BookingService) SelectDate(sessionID, date string) (DraftView, error) {
	if !booking.ValidDate(date, s.now()) {
		d, _ := s.drafts.get(sessionID)
		return s.view(d), apperrors.NewValidationError("Please choose today or a later date")
	}
	d := s.drafts.update(sessionID, func(cur booking.Draft) booking.Draft {
		return booking.Apply(cur, booking.SetDate{Date: date})
	})
	return s.view(d), nil
}

// SelectTime sets the time slot; it is only meaningful once a date is chosen.
func (s *BookingService) SelectTime(sessionID, slotTime string) (DraftView, error) {
	cur, _ := s.drafts.get(sessionID)
	if cur.Date == "" {
		return s.view(cur), apperrors.NewValidationError("Select a date before choosing a time")
	}
	d := s.drafts.update(sessionID, func(cur booking.Draft) booking.Draft {
		return booking.Apply(cur, booking.SetTime{Time: slotTime})
	})
	return s.view(d), nil
}

// SetComments updates the free-text comments.
func (s *BookingService) SetComments(sessionID, text string) DraftView {
	d := s.drafts.update(sessionID, func(cur booking.Draft) booking.Draft {
		return booking.Apply(cur, booking.SetComments{Text: text})
	})
	return s.view(d)
}

// Attach stores the uploaded report file on the draft.
func (s *BookingService) Attach(sessionID string, att *entities.Attachment) DraftView {
	d := s.drafts.update(sessionID, func(cur booking.Draft) booking.Draft {
		return booking.Apply(cur, booking.SetAttachment{Attachment: att})
	})
	return s.view(d)
}

// Discard drops the session's draft (booking view teardown).
func (s *BookingService) Discard(sessionID string) {
	s.drafts.delete(sessionID)
}

// Submit validates the draft and books it upstream. Validation failures make
// no network call. On success the draft resets and the caller is pointed at
// the appointments list; on failure the draft is preserved for a retry.
func (s *BookingService) Submit(ctx context.Context, sess *entities.Session) (*SubmitResult, error) {
	d, _ := s.drafts.get(sess.ID)
	if !d.Submittable() {
		return nil, apperrors.NewValidationError("Please select all required fields")
	}

	message, err := s.api.BookAppointment(ctx, sess.Token, &entities.BookingRequest{
		UserID:           sess.User.ID,
		DoctorID:         d.Doctor.ID,
		DoctorName:       d.Doctor.Name,
		DoctorDepartment: d.Doctor.Department,
		Time:             d.Time,
		Date:             d.Date,
		Comments:         d.Comments,
		Report:           d.Attachment,
	})
	if err != nil {
		return nil, err
	}

	s.drafts.put(sess.ID, booking.Apply(d, booking.Reset{}))
	if message == "" {
		message = "Appointment booked successfully"
	}
	return &SubmitResult{Message: message, Redirect: "/myAppointments"}, nil
}

func (s *BookingService) view(d booking.Draft) DraftView {
	now := s.now()
	return DraftView{
		Draft:         d,
		DoctorOptions: entities.FilterByDepartment(d.Doctors, d.Department),
		SlotOptions:   booking.SelectableSlots(d.Slots, d.Date, now),
		MinDate:       now.Format(booking.DateLayout),
	}
}
