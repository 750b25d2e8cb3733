package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/carelinkhq/patient-portal/internal/domain/entities"
)

// MockHealthAPI mocks the upstream appointment service.
type MockHealthAPI struct {
	mock.Mock
}

func (m *MockHealthAPI) SignIn(ctx context.Context, email, password string) (*entities.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AuthResult), args.Error(1)
}

func (m *MockHealthAPI) SignUp(ctx context.Context, name, email, password string) (string, error) {
	args := m.Called(ctx, name, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockHealthAPI) GetProfile(ctx context.Context, token string) (*entities.Profile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Profile), args.Error(1)
}

func (m *MockHealthAPI) SaveProfile(ctx context.Context, token string, profile *entities.Profile) (string, error) {
	args := m.Called(ctx, token, profile)
	return args.String(0), args.Error(1)
}

func (m *MockHealthAPI) ListDoctors(ctx context.Context, token string) ([]entities.Doctor, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Doctor), args.Error(1)
}

func (m *MockHealthAPI) AvailableSlots(ctx context.Context, token, doctorID string) ([]entities.Slot, error) {
	args := m.Called(ctx, token, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Slot), args.Error(1)
}

func (m *MockHealthAPI) BookAppointment(ctx context.Context, token string, booking *entities.BookingRequest) (string, error) {
	args := m.Called(ctx, token, booking)
	return args.String(0), args.Error(1)
}

func (m *MockHealthAPI) MyAppointments(ctx context.Context, token string) ([]entities.Appointment, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Appointment), args.Error(1)
}

func (m *MockHealthAPI) JoinAppointment(ctx context.Context, token, slotTime, doctorID string) (string, error) {
	args := m.Called(ctx, token, slotTime, doctorID)
	return args.String(0), args.Error(1)
}

func (m *MockHealthAPI) ListServices(ctx context.Context, token string) ([]entities.Service, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Service), args.Error(1)
}
