package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hospital-app-server/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Transaction(fn func(Repository) error) error {
	if err := fn(m); err != nil {
		return err
	}
	args := m.Called(fn)
	return args.Error(0)
}

func (m *MockRepository) GetDoctor(id string) (*models.Doctor, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockRepository) GetAppointment(id string) (*models.Appointment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockRepository) GetAppointmentForPatient(id, patientID string) (*models.Appointment, error) {
	args := m.Called(id, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockRepository) GetAppointmentForDoctor(id, doctorID string) (*models.Appointment, error) {
	args := m.Called(id, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockRepository) CountSlotConflicts(doctorID string, date time.Time, timeOfDay string, excludeID string) (int64, error) {
	args := m.Called(doctorID, date, timeOfDay, excludeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CreateAppointment(apt *models.Appointment) error {
	args := m.Called(apt)
	return args.Error(0)
}

func (m *MockRepository) SaveAppointment(apt *models.Appointment) error {
	args := m.Called(apt)
	return args.Error(0)
}

func (m *MockRepository) GetTreatmentByAppointment(appointmentID string) (*models.Treatment, error) {
	args := m.Called(appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Treatment), args.Error(1)
}

func (m *MockRepository) CreateTreatment(t *models.Treatment) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockRepository) SaveTreatment(t *models.Treatment) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockRepository) GetAvailabilityForDoctor(id, doctorID string) (*models.DoctorAvailability, error) {
	args := m.Called(id, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DoctorAvailability), args.Error(1)
}

func (m *MockRepository) CountAvailability(doctorID string, date time.Time, startTime string) (int64, error) {
	args := m.Called(doctorID, date, startTime)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CreateAvailability(slot *models.DoctorAvailability) error {
	args := m.Called(slot)
	return args.Error(0)
}

func (m *MockRepository) DeleteAvailability(slot *models.DoctorAvailability) error {
	args := m.Called(slot)
	return args.Error(0)
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) InvalidatePrefix(ctx context.Context, prefixes ...string) {
	m.Called(ctx, prefixes)
}

func newTestService(repo *MockRepository) *Service {
	svc := NewService(repo, nil, zap.NewNop())
	svc.today = func() time.Time {
		return time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	}
	return svc
}

func day(offset int) time.Time {
	return time.Date(2026, 3, 10+offset, 0, 0, 0, 0, time.UTC)
}

func TestBookAppointment(t *testing.T) {
	doctor := &models.Doctor{IsAvailable: true}
	doctor.ID = "doc-1"

	t.Run("books a free slot", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		repo.On("GetDoctor", "doc-1").Return(doctor, nil)
		repo.On("Transaction", mock.Anything).Return(nil)
		repo.On("CountSlotConflicts", "doc-1", day(1), "10:30", "").Return(int64(0), nil)
		repo.On("CreateAppointment", mock.Anything).Return(nil)

		apt, err := svc.BookAppointment(context.Background(), BookingInput{
			PatientID: "pat-1",
			DoctorID:  "doc-1",
			Date:      day(1),
			Time:      "10:30",
			Reason:    "checkup",
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusBooked, apt.Status)
		assert.Equal(t, "pat-1", apt.PatientID)
		repo.AssertExpectations(t)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		repo.On("GetDoctor", "missing").Return(nil, ErrNotFound)

		_, err := svc.BookAppointment(context.Background(), BookingInput{DoctorID: "missing", Date: day(1), Time: "10:30"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("doctor flagged unavailable", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		off := &models.Doctor{IsAvailable: false}
		off.ID = "doc-2"
		repo.On("GetDoctor", "doc-2").Return(off, nil)

		_, err := svc.BookAppointment(context.Background(), BookingInput{DoctorID: "doc-2", Date: day(1), Time: "10:30"})
		assert.ErrorIs(t, err, ErrDoctorUnavailable)
	})

	t.Run("past date", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		repo.On("GetDoctor", "doc-1").Return(doctor, nil)

		_, err := svc.BookAppointment(context.Background(), BookingInput{DoctorID: "doc-1", Date: day(-1), Time: "10:30"})
		assert.ErrorIs(t, err, ErrPastDate)
		repo.AssertNotCalled(t, "CreateAppointment", mock.Anything)
	})

	t.Run("today is bookable", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		repo.On("GetDoctor", "doc-1").Return(doctor, nil)
		repo.On("Transaction", mock.Anything).Return(nil)
		repo.On("CountSlotConflicts", "doc-1", day(0), "09:00", "").Return(int64(0), nil)
		repo.On("CreateAppointment", mock.Anything).Return(nil)

		_, err := svc.BookAppointment(context.Background(), BookingInput{DoctorID: "doc-1", Date: day(0), Time: "09:00"})
		assert.NoError(t, err)
	})

	t.Run("occupied slot", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		repo.On("GetDoctor", "doc-1").Return(doctor, nil)
		repo.On("CountSlotConflicts", "doc-1", day(1), "10:30", "").Return(int64(1), nil)

		_, err := svc.BookAppointment(context.Background(), BookingInput{DoctorID: "doc-1", Date: day(1), Time: "10:30"})
		assert.ErrorIs(t, err, ErrSlotConflict)
		repo.AssertNotCalled(t, "CreateAppointment", mock.Anything)
	})

	// Booking never consults declared availability windows, only the
	// conflict count.
	t.Run("declared windows are not consulted", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		repo.On("GetDoctor", "doc-1").Return(doctor, nil)
		repo.On("Transaction", mock.Anything).Return(nil)
		repo.On("CountSlotConflicts", "doc-1", day(1), "23:00", "").Return(int64(0), nil)
		repo.On("CreateAppointment", mock.Anything).Return(nil)

		_, err := svc.BookAppointment(context.Background(), BookingInput{DoctorID: "doc-1", Date: day(1), Time: "23:00"})
		require.NoError(t, err)
		repo.AssertNotCalled(t, "CountAvailability", mock.Anything, mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "GetAvailabilityForDoctor", mock.Anything, mock.Anything)
	})

	t.Run("cache invalidated after booking", func(t *testing.T) {
		repo := new(MockRepository)
		invalidator := new(MockInvalidator)
		svc := newTestService(repo)
		svc.cache = invalidator

		repo.On("GetDoctor", "doc-1").Return(doctor, nil)
		repo.On("Transaction", mock.Anything).Return(nil)
		repo.On("CountSlotConflicts", "doc-1", day(1), "10:30", "").Return(int64(0), nil)
		repo.On("CreateAppointment", mock.Anything).Return(nil)
		invalidator.On("InvalidatePrefix", mock.Anything, []string{"appointments"}).Return()

		_, err := svc.BookAppointment(context.Background(), BookingInput{DoctorID: "doc-1", Date: day(1), Time: "10:30"})
		require.NoError(t, err)
		invalidator.AssertExpectations(t)
	})
}

func TestRescheduleAppointment(t *testing.T) {
	booked := func() *models.Appointment {
		apt := &models.Appointment{
			PatientID:       "pat-1",
			DoctorID:        "doc-1",
			AppointmentDate: day(1),
			AppointmentTime: "10:30",
			Status:          models.StatusBooked,
		}
		apt.ID = "apt-1"
		return apt
	}

	t.Run("moves the appointment", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		repo.On("Transaction", mock.Anything).Return(nil)
		repo.On("GetAppointmentForPatient", "apt-1", "pat-1").Return(booked(), nil)
		repo.On("CountSlotConflicts", "doc-1", day(3), "14:00", "apt-1").Return(int64(0), nil)
		repo.On("SaveAppointment", mock.Anything).Return(nil)

		apt, err := svc.RescheduleAppointment(context.Background(), RescheduleInput{
			AppointmentID: "apt-1",
			PatientID:     "pat-1",
			Date:          day(3),
			Time:          "14:00",
		})
		require.NoError(t, err)
		assert.Equal(t, day(3), apt.AppointmentDate)
		assert.Equal(t, "14:00", apt.AppointmentTime)
		assert.Equal(t, models.StatusBooked, apt.Status)
	})

	t.Run("own slot excluded from conflict check", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		repo.On("Transaction", mock.Anything).Return(nil)
		repo.On("GetAppointmentForPatient", "apt-1", "pat-1").Return(booked(), nil)
		repo.On("CountSlotConflicts", "doc-1", day(1), "10:30", "apt-1").Return(int64(0), nil)
		repo.On("SaveAppointment", mock.Anything).Return(nil)

		_, err := svc.RescheduleAppointment(context.Background(), RescheduleInput{
			AppointmentID: "apt-1",
			PatientID:     "pat-1",
			Date:          day(1),
			Time:          "10:30",
		})
		assert.NoError(t, err)
		repo.AssertCalled(t, "CountSlotConflicts", "doc-1", day(1), "10:30", "apt-1")
	})

	t.Run("target slot occupied", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		repo.On("GetAppointmentForPatient", "apt-1", "pat-1").Return(booked(), nil)
		repo.On("CountSlotConflicts", "doc-1", day(3), "14:00", "apt-1").Return(int64(1), nil)

		_, err := svc.RescheduleAppointment(context.Background(), RescheduleInput{
			AppointmentID: "apt-1",
			PatientID:     "pat-1",
			Date:          day(3),
			Time:          "14:00",
		})
		assert.ErrorIs(t, err, ErrSlotConflict)
		repo.AssertNotCalled(t, "SaveAppointment", mock.Anything)
	})

	t.Run("cancelled appointment cannot move", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		cancelled := booked()
		cancelled.Status = models.StatusCancelled
		repo.On("GetAppointmentForPatient", "apt-1", "pat-1").Return(cancelled, nil)

		_, err := svc.RescheduleAppointment(context.Background(), RescheduleInput{
			AppointmentID: "apt-1",
			PatientID:     "pat-1",
			Date:          day(3),
			Time:          "14:00",
		})

		var transition *InvalidStateTransitionError
		require.True(t, errors.As(err, &transition))
		assert.Equal(t, models.StatusCancelled, transition.From)
	})

	t.Run("past target date", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		_, err := svc.RescheduleAppointment(context.Background(), RescheduleInput{
			AppointmentID: "apt-1",
			PatientID:     "pat-1",
			Date:          day(-2),
			Time:          "14:00",
		})
		assert.ErrorIs(t, err, ErrPastDate)
	})
}

func TestCompleteAppointment(t *testing.T) {
	booked := func() *models.Appointment {
		apt := &models.Appointment{DoctorID: "doc-1", PatientID: "pat-1", Status: models.StatusBooked}
		apt.ID = "apt-1"
		return apt
	}

	t.Run("completes and creates the treatment", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		repo.On("Transaction", mock.Anything).Return(nil)
		repo.On("GetAppointmentForDoctor", "apt-1", "doc-1").Return(booked(), nil)
		repo.On("SaveAppointment", mock.Anything).Return(nil)
		repo.On("GetTreatmentByAppointment", "apt-1").Return(nil, ErrNotFound)
		repo.On("CreateTreatment", mock.MatchedBy(func(tr *models.Treatment) bool {
			return tr.AppointmentID == "apt-1" && tr.Diagnosis == "flu"
		})).Return(nil)

		apt, err := svc.CompleteAppointment(context.Background(), TreatmentInput{
			AppointmentID: "apt-1",
			DoctorID:      "doc-1",
			Diagnosis:     "flu",
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, apt.Status)
		repo.AssertExpectations(t)
	})

	t.Run("existing treatment is updated not duplicated", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		existing := &models.Treatment{AppointmentID: "apt-1", Diagnosis: "old"}
		existing.ID = "tr-1"

		repo.On("Transaction", mock.Anything).Return(nil)
		repo.On("GetAppointmentForDoctor", "apt-1", "doc-1").Return(booked(), nil)
		repo.On("SaveAppointment", mock.Anything).Return(nil)
		repo.On("GetTreatmentByAppointment", "apt-1").Return(existing, nil)
		repo.On("SaveTreatment", mock.MatchedBy(func(tr *models.Treatment) bool {
			return tr.ID == "tr-1" && tr.Diagnosis == "updated"
		})).Return(nil)

		_, err := svc.CompleteAppointment(context.Background(), TreatmentInput{
			AppointmentID: "apt-1",
			DoctorID:      "doc-1",
			Diagnosis:     "updated",
		})
		require.NoError(t, err)
		repo.AssertNotCalled(t, "CreateTreatment", mock.Anything)
	})

	t.Run("completed appointment cannot complete again", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		done := booked()
		done.Status = models.StatusCompleted
		repo.On("GetAppointmentForDoctor", "apt-1", "doc-1").Return(done, nil)

		_, err := svc.CompleteAppointment(context.Background(), TreatmentInput{AppointmentID: "apt-1", DoctorID: "doc-1"})

		var transition *InvalidStateTransitionError
		require.True(t, errors.As(err, &transition))
		assert.Equal(t, models.StatusCompleted, transition.From)
		assert.Equal(t, models.StatusCompleted, transition.To)
	})

	t.Run("someone else's appointment", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		repo.On("GetAppointmentForDoctor", "apt-1", "doc-9").Return(nil, ErrNotFound)

		_, err := svc.CompleteAppointment(context.Background(), TreatmentInput{AppointmentID: "apt-1", DoctorID: "doc-9"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRecordTreatment(t *testing.T) {
	apt := &models.Appointment{DoctorID: "doc-1", PatientID: "pat-1", Status: models.StatusCompleted}
	apt.ID = "apt-1"

	t.Run("records without changing status", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		stored := &models.Treatment{AppointmentID: "apt-1", Diagnosis: "flu"}

		repo.On("Transaction", mock.Anything).Return(nil)
		repo.On("GetAppointmentForDoctor", "apt-1", "doc-1").Return(apt, nil)
		repo.On("GetTreatmentByAppointment", "apt-1").Return(nil, ErrNotFound).Once()
		repo.On("CreateTreatment", mock.Anything).Return(nil)
		repo.On("GetTreatmentByAppointment", "apt-1").Return(stored, nil)

		treatment, err := svc.RecordTreatment(context.Background(), "pat-1", TreatmentInput{
			AppointmentID: "apt-1",
			DoctorID:      "doc-1",
			Diagnosis:     "flu",
		})
		require.NoError(t, err)
		assert.Equal(t, "flu", treatment.Diagnosis)
		repo.AssertNotCalled(t, "SaveAppointment", mock.Anything)
	})

	t.Run("patient mismatch", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		repo.On("GetAppointmentForDoctor", "apt-1", "doc-1").Return(apt, nil)

		_, err := svc.RecordTreatment(context.Background(), "pat-other", TreatmentInput{
			AppointmentID: "apt-1",
			DoctorID:      "doc-1",
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCancelAppointment(t *testing.T) {
	booked := func() *models.Appointment {
		apt := &models.Appointment{DoctorID: "doc-1", PatientID: "pat-1", Status: models.StatusBooked}
		apt.ID = "apt-1"
		return apt
	}

	t.Run("patient cancels own appointment", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		repo.On("Transaction", mock.Anything).Return(nil)
		repo.On("GetAppointmentForPatient", "apt-1", "pat-1").Return(booked(), nil)
		repo.On("SaveAppointment", mock.MatchedBy(func(a *models.Appointment) bool {
			return a.Status == models.StatusCancelled
		})).Return(nil)

		apt, err := svc.CancelAppointment(context.Background(), "apt-1", CancelScope{PatientID: "pat-1"})
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, apt.Status)
	})

	t.Run("doctor scope uses doctor lookup", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		repo.On("Transaction", mock.Anything).Return(nil)
		repo.On("GetAppointmentForDoctor", "apt-1", "doc-1").Return(booked(), nil)
		repo.On("SaveAppointment", mock.Anything).Return(nil)

		_, err := svc.CancelAppointment(context.Background(), "apt-1", CancelScope{DoctorID: "doc-1"})
		assert.NoError(t, err)
		repo.AssertNotCalled(t, "GetAppointmentForPatient", mock.Anything, mock.Anything)
	})

	t.Run("admin cancels with empty scope", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		repo.On("Transaction", mock.Anything).Return(nil)
		repo.On("GetAppointment", "apt-1").Return(booked(), nil)
		repo.On("SaveAppointment", mock.Anything).Return(nil)

		_, err := svc.CancelAppointment(context.Background(), "apt-1", CancelScope{})
		assert.NoError(t, err)
	})

	t.Run("cancel twice fails and leaves the store untouched", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		cancelled := booked()
		cancelled.Status = models.StatusCancelled
		repo.On("GetAppointmentForPatient", "apt-1", "pat-1").Return(cancelled, nil)

		_, err := svc.CancelAppointment(context.Background(), "apt-1", CancelScope{PatientID: "pat-1"})

		var transition *InvalidStateTransitionError
		require.True(t, errors.As(err, &transition))
		assert.Equal(t, models.StatusCancelled, transition.From)
		assert.Equal(t, models.StatusCancelled, transition.To)
		repo.AssertNotCalled(t, "SaveAppointment", mock.Anything)
	})

	t.Run("completed appointment cannot be cancelled", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		done := booked()
		done.Status = models.StatusCompleted
		repo.On("GetAppointmentForPatient", "apt-1", "pat-1").Return(done, nil)

		_, err := svc.CancelAppointment(context.Background(), "apt-1", CancelScope{PatientID: "pat-1"})

		var transition *InvalidStateTransitionError
		require.True(t, errors.As(err, &transition))
		assert.Equal(t, models.StatusCompleted, transition.From)
	})
}

func TestDeclareAvailability(t *testing.T) {
	t.Run("declares a new slot", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		repo.On("Transaction", mock.Anything).Return(nil)
		repo.On("CountAvailability", "doc-1", day(2), "09:00").Return(int64(0), nil)
		repo.On("CreateAvailability", mock.MatchedBy(func(slot *models.DoctorAvailability) bool {
			return slot.DoctorID == "doc-1" && slot.StartTime == "09:00" && slot.EndTime == "12:00" && slot.IsAvailable
		})).Return(nil)

		slot, err := svc.DeclareAvailability(context.Background(), "doc-1", day(2), "09:00", "12:00")
		require.NoError(t, err)
		assert.Equal(t, day(2), slot.Date)
	})

	t.Run("past date", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		_, err := svc.DeclareAvailability(context.Background(), "doc-1", day(-1), "09:00", "12:00")
		assert.ErrorIs(t, err, ErrPastDate)
	})

	t.Run("start not before end", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		_, err := svc.DeclareAvailability(context.Background(), "doc-1", day(2), "12:00", "09:00")
		assert.ErrorIs(t, err, ErrInvalidTimeRange)

		_, err = svc.DeclareAvailability(context.Background(), "doc-1", day(2), "09:00", "09:00")
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("duplicate slot", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		repo.On("CountAvailability", "doc-1", day(2), "09:00").Return(int64(1), nil)

		_, err := svc.DeclareAvailability(context.Background(), "doc-1", day(2), "09:00", "12:00")
		assert.ErrorIs(t, err, ErrDuplicateSlot)
		repo.AssertNotCalled(t, "CreateAvailability", mock.Anything)
	})
}

func TestRevokeAvailability(t *testing.T) {
	t.Run("deletes an owned slot", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		slot := &models.DoctorAvailability{DoctorID: "doc-1"}
		slot.ID = "slot-1"

		repo.On("Transaction", mock.Anything).Return(nil)
		repo.On("GetAvailabilityForDoctor", "slot-1", "doc-1").Return(slot, nil)
		repo.On("DeleteAvailability", slot).Return(nil)

		err := svc.RevokeAvailability(context.Background(), "doc-1", "slot-1")
		assert.NoError(t, err)
	})

	t.Run("slot owned by another doctor", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		repo.On("GetAvailabilityForDoctor", "slot-1", "doc-2").Return(nil, ErrNotFound)

		err := svc.RevokeAvailability(context.Background(), "doc-2", "slot-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestInvalidStateTransitionError(t *testing.T) {
	err := &InvalidStateTransitionError{From: models.StatusCancelled, To: models.StatusCompleted}
	assert.Contains(t, err.Error(), "Cancelled")
	assert.Contains(t, err.Error(), "Completed")
}
