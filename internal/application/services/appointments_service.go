package services

import (
	"context"
	"strconv"
	"time"

	"github.com/carelinkhq/patient-portal/internal/domain/booking"
	"github.com/carelinkhq/patient-portal/internal/domain/entities"
	"github.com/carelinkhq/patient-portal/internal/domain/providers"
	apperrors "github.com/carelinkhq/patient-portal/pkg/errors"
)

// AppointmentsService presents the patient's appointments with a year filter
// and the day-gated join action.
type AppointmentsService struct {
	api providers.HealthAPI
	now func() time.Time
}

// NewAppointmentsService creates an appointments list service.
func NewAppointmentsService(api providers.HealthAPI) *AppointmentsService {
	return &AppointmentsService{api: api, now: time.Now}
}

// AppointmentView decorates an appointment with its join gate.
type AppointmentView struct {
	entities.Appointment
	Joinable bool `json:"joinable"`
}

// AppointmentList is the rendered list: the (possibly filtered) appointments
// plus the year filter options derived from the full set.
type AppointmentList struct {
	Appointments []AppointmentView `json:"appointments"`
	Years        []int             `json:"years"`
}

// List fetches the patient's appointments. yearFilter is either "all" (or
// empty) for no filtering, or a specific year from the derived options.
func (s *AppointmentsService) List(ctx context.Context, sess *entities.Session, yearFilter string) (*AppointmentList, error) {
	appointments, err := s.api.MyAppointments(ctx, sess.Token)
	if err != nil {
		return nil, err
	}

	now := s.now()
	years := booking.Years(appointments, now.Location())

	if yearFilter != "" && yearFilter != "all" {
		year, err := strconv.Atoi(yearFilter)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid year filter")
		}
		appointments = booking.FilterByYear(appointments, year, now.Location())
	}

	views := make([]AppointmentView, 0, len(appointments))
	for _, a := range appointments {
		views = append(views, AppointmentView{
			Appointment: a,
			Joinable:    booking.JoinState(a, now) == booking.EligibilityJoinable,
		})
	}
	return &AppointmentList{Appointments: views, Years: years}, nil
}

// Join triggers the join action for one appointment. Eligibility is enforced
// here, before any upstream call: only an appointment on the current calendar
// day can be joined, and the rejection message tells the patient whether the
// appointment already passed or has not arrived yet.
func (s *AppointmentsService) Join(ctx context.Context, sess *entities.Session, appointmentID string) (string, error) {
	appointments, err := s.api.MyAppointments(ctx, sess.Token)
	if err != nil {
		return "", err
	}

	var target *entities.Appointment
	for i := range appointments {
		if appointments[i].ID == appointmentID {
			target = &appointments[i]
			break
		}
	}
	if target == nil {
		return "", apperrors.NewNotFoundError("appointment not found")
	}

	now := s.now()
	switch booking.JoinState(*target, now) {
	case booking.EligibilityJoinable:
		// fall through to the upstream call
	case booking.EligibilityPassed:
		return "", apperrors.NewValidationError("This appointment has already passed")
	case booking.EligibilityUpcoming:
		return "", apperrors.NewValidationError("This appointment is not yet today; you can join on its scheduled day")
	default:
		return "", apperrors.NewValidationError("This appointment's date could not be determined")
	}

	message, err := s.api.JoinAppointment(ctx, sess.Token, target.EffectiveClock(now.Location()), target.DoctorID)
	if err != nil {
		return "", err
	}
	if message == "" {
		message = "Successfully joined the appointment"
	}
	// The list is not refreshed here; the client re-fetches on its next
	// navigation to the appointments view.
	return message, nil
}
