package healthapi

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/carelinkhq/patient-portal/internal/domain/entities"
	"github.com/carelinkhq/patient-portal/internal/domain/providers"
	apperrors "github.com/carelinkhq/patient-portal/pkg/errors"
)

// MockAdapter provides deterministic upstream behavior for local development.
type MockAdapter struct {
	mu       sync.Mutex
	doctors  []entities.Doctor
	services []entities.Service
	booked   []entities.Appointment
}

// NewMockAdapter creates a mock upstream with a small fixed clinic.
func NewMockAdapter() providers.HealthAPI {
	return &MockAdapter{
		doctors: []entities.Doctor{
			{ID: "doc-1", Name: "Dr. Imani Okafor", Department: "Cardiology"},
			{ID: "doc-2", Name: "Dr. Lena Fischer", Department: "Dermatology"},
			{ID: "doc-3", Name: "Dr. Samuel Ortiz", Department: "Cardiology"},
		},
		services: []entities.Service{
			{Name: "General Checkup"},
			{Name: "Cardiac Screening"},
			{Name: "Skin Consultation"},
		},
	}
}

// SignIn accepts any password and fabricates an identity from the email.
func (m *MockAdapter) SignIn(ctx context.Context, email, password string) (*entities.AuthResult, error) {
	if email == "" || password == "" {
		return nil, apperrors.NewExternalError("Authentication failed", nil)
	}
	return &entities.AuthResult{
		Token:  "mock-token-" + uuid.NewString(),
		UserID: "user-" + email,
		Name:   email,
	}, nil
}

// SignUp always succeeds.
func (m *MockAdapter) SignUp(ctx context.Context, name, email, password string) (string, error) {
	return "Account created", nil
}

// GetProfile returns a sample profile.
func (m *MockAdapter) GetProfile(ctx context.Context, token string) (*entities.Profile, error) {
	return &entities.Profile{Name: "Sample Patient", Email: "patient@example.com", City: "Lagos"}, nil
}

// SaveProfile accepts any profile.
func (m *MockAdapter) SaveProfile(ctx context.Context, token string, profile *entities.Profile) (string, error) {
	return "Profile saved", nil
}

// ListDoctors returns the fixed clinic roster.
func (m *MockAdapter) ListDoctors(ctx context.Context, token string) ([]entities.Doctor, error) {
	return m.doctors, nil
}

// AvailableSlots returns half-hour slots with one pre-booked entry.
func (m *MockAdapter) AvailableSlots(ctx context.Context, token, doctorID string) ([]entities.Slot, error) {
	if _, ok := entities.FindDoctor(m.doctors, doctorID); !ok {
		return nil, apperrors.NewExternalError("Doctor not found", nil)
	}
	slots := make([]entities.Slot, 0, 6)
	for i, clock := range []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"} {
		slots = append(slots, entities.Slot{
			ID:       fmt.Sprintf("%s-slot-%d", doctorID, i),
			Time:     clock,
			IsBooked: i == 2,
		})
	}
	return slots, nil
}

// BookAppointment records the booking in memory.
func (m *MockAdapter) BookAppointment(ctx context.Context, token string, booking *entities.BookingRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.booked = append(m.booked, entities.Appointment{
		ID:               uuid.NewString(),
		DoctorID:         booking.DoctorID,
		DoctorName:       booking.DoctorName,
		DoctorDepartment: booking.DoctorDepartment,
		Date:             booking.Date,
		Time:             booking.Time,
	})
	return "Appointment booked successfully", nil
}

// MyAppointments returns everything booked through the mock.
func (m *MockAdapter) MyAppointments(ctx context.Context, token string) ([]entities.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entities.Appointment, len(m.booked))
	copy(out, m.booked)
	return out, nil
}

// JoinAppointment always succeeds.
func (m *MockAdapter) JoinAppointment(ctx context.Context, token, slotTime, doctorID string) (string, error) {
	return "Successfully joined the appointment", nil
}

// ListServices returns the fixed catalog.
func (m *MockAdapter) ListServices(ctx context.Context, token string) ([]entities.Service, error) {
	return m.services, nil
}
