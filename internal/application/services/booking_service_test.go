package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carelinkhq/patient-portal/internal/application/services"
	"github.com/carelinkhq/patient-portal/internal/domain/entities"
	apperrors "github.com/carelinkhq/patient-portal/pkg/errors"
)

func testSession() *entities.Session {
	return &entities.Session{
		ID:    "sess-1",
		Token: "tok-abc",
		User:  entities.User{ID: "u-1", Name: "Pat"},
	}
}

func clinicDoctors() []entities.Doctor {
	return []entities.Doctor{
		{ID: "doc-1", Name: "Dr. Imani Okafor", Department: "Cardiology"},
		{ID: "doc-2", Name: "Dr. Lena Fischer", Department: "Dermatology"},
	}
}

func TestBookingService_StartDraft(t *testing.T) {
	t.Run("loads doctors and derives departments", func(t *testing.T) {
		api := new(MockHealthAPI)
		api.On("ListDoctors", mock.Anything, "tok-abc").Return(clinicDoctors(), nil)

		svc := services.NewBookingService(api)
		view := svc.StartDraft(context.Background(), testSession())

		assert.Len(t, view.Doctors, 2)
		assert.Equal(t, []string{"Cardiology", "Dermatology"}, view.Departments)
		api.AssertExpectations(t)
	})

	t.Run("doctor fetch failure leaves the form empty but usable", func(t *testing.T) {
		api := new(MockHealthAPI)
		api.On("ListDoctors", mock.Anything, "tok-abc").Return(nil, errors.New("boom"))

		svc := services.NewBookingService(api)
		view := svc.StartDraft(context.Background(), testSession())

		assert.Empty(t, view.Doctors)
		assert.Empty(t, view.Departments)
	})
}

func TestBookingService_SelectDepartment(t *testing.T) {
	api := new(MockHealthAPI)
	api.On("ListDoctors", mock.Anything, "tok-abc").Return(clinicDoctors(), nil)

	svc := services.NewBookingService(api)
	svc.StartDraft(context.Background(), testSession())

	t.Run("doctor options follow the chosen department", func(t *testing.T) {
		view := svc.SelectDepartment("sess-1", "Cardiology")

		if assert.Len(t, view.DoctorOptions, 1) {
			assert.Equal(t, "doc-1", view.DoctorOptions[0].ID)
		}
	})

	t.Run("no department means no selectable doctors", func(t *testing.T) {
		view := svc.SelectDepartment("sess-1", "")

		assert.Empty(t, view.DoctorOptions)
		assert.Len(t, view.Doctors, 2, "the full list stays on the draft")
	})

	t.Run("changing department clears downstream selections", func(t *testing.T) {
		svc.SelectDepartment("sess-1", "Cardiology")
		slots := []entities.Slot{{ID: "s1", Time: "10:00"}}
		api.On("AvailableSlots", mock.Anything, "tok-abc", "doc-1").Return(slots, nil)

		_, err := svc.SelectDoctor(context.Background(), testSession(), "doc-1")
		require.NoError(t, err)
		_, err = svc.SelectDate("sess-1", "2099-01-02")
		require.NoError(t, err)

		view := svc.SelectDepartment("sess-1", "Dermatology")

		assert.Empty(t, view.DoctorID)
		assert.Nil(t, view.Doctor)
		assert.Empty(t, view.Date)
		assert.Empty(t, view.Time)
		if assert.Len(t, view.DoctorOptions, 1) {
			assert.Equal(t, "doc-2", view.DoctorOptions[0].ID)
		}
	})
}

func TestBookingService_SelectDoctor(t *testing.T) {
	t.Run("fetches slots and caches the doctor record", func(t *testing.T) {
		api := new(MockHealthAPI)
		api.On("ListDoctors", mock.Anything, "tok-abc").Return(clinicDoctors(), nil)
		api.On("AvailableSlots", mock.Anything, "tok-abc", "doc-1").Return([]entities.Slot{
			{ID: "s1", Time: "10:00"},
		}, nil)

		svc := services.NewBookingService(api)
		sess := testSession()
		svc.StartDraft(context.Background(), sess)

		view, err := svc.SelectDoctor(context.Background(), sess, "doc-1")
		require.NoError(t, err)
		require.NotNil(t, view.Doctor)
		assert.Equal(t, "Dr. Imani Okafor", view.Doctor.Name)
		assert.Len(t, view.Slots, 1)
		api.AssertExpectations(t)
	})

	t.Run("empty selection fires no slot fetch", func(t *testing.T) {
		api := new(MockHealthAPI)
		api.On("ListDoctors", mock.Anything, "tok-abc").Return(clinicDoctors(), nil)

		svc := services.NewBookingService(api)
		sess := testSession()
		svc.StartDraft(context.Background(), sess)

		view, err := svc.SelectDoctor(context.Background(), sess, "")
		require.NoError(t, err)
		assert.Empty(t, view.DoctorID)
		api.AssertNotCalled(t, "AvailableSlots", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stale slot response does not overwrite the newer selection", func(t *testing.T) {
		api := new(MockHealthAPI)
		api.On("ListDoctors", mock.Anything, "tok-abc").Return(clinicDoctors(), nil)

		started := make(chan struct{})
		release := make(chan struct{})
		api.On("AvailableSlots", mock.Anything, "tok-abc", "doc-1").
			Run(func(args mock.Arguments) {
				close(started)
				<-release
			}).
			Return([]entities.Slot{{ID: "stale-slot", Time: "09:00"}}, nil)
		api.On("AvailableSlots", mock.Anything, "tok-abc", "doc-2").
			Return([]entities.Slot{{ID: "fresh-slot", Time: "14:00"}}, nil)

		svc := services.NewBookingService(api)
		sess := testSession()
		svc.StartDraft(context.Background(), sess)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.SelectDoctor(context.Background(), sess, "doc-1")
		}()

		<-started
		_, err := svc.SelectDoctor(context.Background(), sess, "doc-2")
		require.NoError(t, err)

		close(release)
		wg.Wait()

		view := svc.Draft(sess.ID)
		assert.Equal(t, "doc-2", view.DoctorID)
		require.Len(t, view.Slots, 1)
		assert.Equal(t, "fresh-slot", view.Slots[0].ID,
			"slots from the superseded fetch must be discarded")
	})
}

func TestBookingService_SelectDate(t *testing.T) {
	api := new(MockHealthAPI)
	svc := services.NewBookingService(api)

	t.Run("accepts a future date and clears the time", func(t *testing.T) {
		view, err := svc.SelectDate("sess-1", "2099-01-02")
		require.NoError(t, err)
		assert.Equal(t, "2099-01-02", view.Date)
		assert.Empty(t, view.Time)
	})

	t.Run("rejects a past date", func(t *testing.T) {
		_, err := svc.SelectDate("sess-1", "2000-01-01")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
	})

	t.Run("time requires a date", func(t *testing.T) {
		_, err := svc.SelectTime("sess-other", "10:00")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
	})
}

func TestBookingService_Submit(t *testing.T) {
	setupDraft := func(api *MockHealthAPI) (*services.BookingService, *entities.Session) {
		api.On("ListDoctors", mock.Anything, "tok-abc").Return(clinicDoctors(), nil)
		api.On("AvailableSlots", mock.Anything, "tok-abc", "doc-1").Return([]entities.Slot{
			{ID: "s1", Time: "10:00"},
		}, nil)

		svc := services.NewBookingService(api)
		sess := testSession()
		svc.StartDraft(context.Background(), sess)
		_, err := svc.SelectDoctor(context.Background(), sess, "doc-1")
		require.NoError(t, err)
		_, err = svc.SelectDate(sess.ID, "2099-01-02")
		require.NoError(t, err)
		_, err = svc.SelectTime(sess.ID, "10:00")
		require.NoError(t, err)
		return svc, sess
	}

	t.Run("success clears the draft and redirects to the list", func(t *testing.T) {
		api := new(MockHealthAPI)
		svc, sess := setupDraft(api)

		api.On("BookAppointment", mock.Anything, "tok-abc", mock.MatchedBy(func(b *entities.BookingRequest) bool {
			return b.UserID == "u-1" && b.DoctorID == "doc-1" &&
				b.DoctorName == "Dr. Imani Okafor" && b.DoctorDepartment == "Cardiology" &&
				b.Date == "2099-01-02" && b.Time == "10:00"
		})).Return("Appointment booked successfully", nil)

		result, err := svc.Submit(context.Background(), sess)
		require.NoError(t, err)
		assert.Equal(t, "/myAppointments", result.Redirect)

		view := svc.Draft(sess.ID)
		assert.Empty(t, view.Department)
		assert.Empty(t, view.DoctorID)
		assert.Empty(t, view.Date)
		api.AssertExpectations(t)
	})

	t.Run("incomplete draft performs zero network calls", func(t *testing.T) {
		api := new(MockHealthAPI)
		svc := services.NewBookingService(api)
		sess := testSession()

		_, err := svc.Submit(context.Background(), sess)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
		api.AssertNotCalled(t, "BookAppointment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("upstream failure preserves the draft", func(t *testing.T) {
		api := new(MockHealthAPI)
		svc, sess := setupDraft(api)

		api.On("BookAppointment", mock.Anything, "tok-abc", mock.Anything).
			Return("", apperrors.NewExternalError("Failed to book appointment", nil))

		_, err := svc.Submit(context.Background(), sess)
		require.Error(t, err)

		view := svc.Draft(sess.ID)
		assert.Equal(t, "doc-1", view.DoctorID, "draft must survive a failed submission")
		assert.Equal(t, "2099-01-02", view.Date)
	})
}
