package providers

import (
	"context"

	"github.com/carelinkhq/patient-portal/internal/domain/entities"
)

// HealthAPI defines the upstream appointment service the portal fronts.
// Methods that operate on behalf of a signed-in patient take the bearer token.
type HealthAPI interface {
	// SignIn authenticates and returns the bearer token with the user identity.
	SignIn(ctx context.Context, email, password string) (*entities.AuthResult, error)

	// SignUp registers a new patient and returns the upstream message.
	SignUp(ctx context.Context, name, email, password string) (string, error)

	// GetProfile fetches the patient's stored contact details.
	GetProfile(ctx context.Context, token string) (*entities.Profile, error)

	// SaveProfile stores updated contact details and returns the upstream message.
	SaveProfile(ctx context.Context, token string, profile *entities.Profile) (string, error)

	// ListDoctors returns all bookable doctors.
	ListDoctors(ctx context.Context, token string) ([]entities.Doctor, error)

	// AvailableSlots returns the slots for one doctor.
	AvailableSlots(ctx context.Context, token, doctorID string) ([]entities.Slot, error)

	// BookAppointment submits a completed booking and returns the upstream message.
	BookAppointment(ctx context.Context, token string, booking *entities.BookingRequest) (string, error)

	// MyAppointments returns the signed-in patient's appointments.
	MyAppointments(ctx context.Context, token string) ([]entities.Appointment, error)

	// JoinAppointment joins a same-day appointment and returns the upstream message.
	JoinAppointment(ctx context.Context, token, slotTime, doctorID string) (string, error)

	// ListServices returns the clinic's service catalog.
	ListServices(ctx context.Context, token string) ([]entities.Service, error)
}
