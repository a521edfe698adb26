package scheduling

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"hospital-app-server/internal/models"
	"hospital-app-server/internal/utils"
)

// CacheInvalidator drops cached read responses by key prefix after a
// mutation commits. Cache failures never affect correctness, so the
// interface has no error return.
type CacheInvalidator interface {
	InvalidatePrefix(ctx context.Context, prefixes ...string)
}

// Service implements the appointment booking lifecycle and availability
// management. Every mutation runs the conflict check and the write inside
// one transaction; the store's unique index is the last line of defense
// against concurrent bookings of the same slot.
type Service struct {
	repo   Repository
	cache  CacheInvalidator
	logger *zap.Logger
	today  func() time.Time
}

// NewService creates a scheduling service. cache may be nil when no cache
// is configured.
func NewService(repo Repository, cache CacheInvalidator, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
		today:  utils.Today,
	}
}

// BookingInput carries a validated booking request.
type BookingInput struct {
	PatientID string
	DoctorID  string
	Date      time.Time
	Time      string
	Reason    string
	Notes     string
}

// BookAppointment creates an appointment in the Booked state. It fails with
// ErrNotFound when the doctor does not exist, ErrDoctorUnavailable when the
// doctor is flagged unavailable, ErrPastDate for dates before today and
// ErrSlotConflict when another non-cancelled appointment holds the slot.
func (s *Service) BookAppointment(ctx context.Context, in BookingInput) (*models.Appointment, error) {
	doctor, err := s.repo.GetDoctor(in.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.IsAvailable {
		return nil, ErrDoctorUnavailable
	}
	if in.Date.Before(s.today()) {
		return nil, ErrPastDate
	}

	apt := &models.Appointment{
		PatientID:       in.PatientID,
		DoctorID:        in.DoctorID,
		AppointmentDate: in.Date,
		AppointmentTime: in.Time,
		Status:          models.StatusBooked,
		Reason:          in.Reason,
		Notes:           in.Notes,
	}

	err = s.repo.Transaction(func(r Repository) error {
		conflicts, err := r.CountSlotConflicts(in.DoctorID, in.Date, in.Time, "")
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrSlotConflict
		}
		return r.CreateAppointment(apt)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("appointment booked",
		zap.String("appointment_id", apt.ID),
		zap.String("doctor_id", apt.DoctorID),
		zap.String("date", utils.FormatDate(apt.AppointmentDate)),
		zap.String("time", apt.AppointmentTime),
	)
	s.invalidate(ctx, "appointments")
	return apt, nil
}

// RescheduleInput carries a validated reschedule request. Reason and Notes
// are optional updates; nil leaves the stored value unchanged.
type RescheduleInput struct {
	AppointmentID string
	PatientID     string
	Date          time.Time
	Time          string
	Reason        *string
	Notes         *string
}

// RescheduleAppointment moves a Booked appointment to a new (date, time) in
// place. The appointment being moved is excluded from the conflict check so
// rescheduling to its own current slot succeeds.
func (s *Service) RescheduleAppointment(ctx context.Context, in RescheduleInput) (*models.Appointment, error) {
	if in.Date.Before(s.today()) {
		return nil, ErrPastDate
	}

	var apt *models.Appointment
	err := s.repo.Transaction(func(r Repository) error {
		var err error
		apt, err = r.GetAppointmentForPatient(in.AppointmentID, in.PatientID)
		if err != nil {
			return err
		}
		if apt.Status.Terminal() {
			return &InvalidStateTransitionError{From: apt.Status, To: models.StatusBooked}
		}

		conflicts, err := r.CountSlotConflicts(apt.DoctorID, in.Date, in.Time, apt.ID)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrSlotConflict
		}

		apt.AppointmentDate = in.Date
		apt.AppointmentTime = in.Time
		if in.Reason != nil {
			apt.Reason = *in.Reason
		}
		if in.Notes != nil {
			apt.Notes = *in.Notes
		}
		return r.SaveAppointment(apt)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("appointment rescheduled",
		zap.String("appointment_id", apt.ID),
		zap.String("date", utils.FormatDate(apt.AppointmentDate)),
		zap.String("time", apt.AppointmentTime),
	)
	s.invalidate(ctx, "appointments")
	return apt, nil
}

// TreatmentInput carries the clinical record attached when an appointment
// is completed or annotated.
type TreatmentInput struct {
	AppointmentID    string
	DoctorID         string
	Diagnosis        string
	Prescription     string
	TreatmentNotes   string
	NextVisitDate    *time.Time
	FollowUpRequired bool
}

// CompleteAppointment transitions a Booked appointment to Completed and
// upserts its treatment record. Completing twice updates the same treatment
// row, never creates a second one.
func (s *Service) CompleteAppointment(ctx context.Context, in TreatmentInput) (*models.Appointment, error) {
	var apt *models.Appointment
	err := s.repo.Transaction(func(r Repository) error {
		var err error
		apt, err = r.GetAppointmentForDoctor(in.AppointmentID, in.DoctorID)
		if err != nil {
			return err
		}
		if apt.Status.Terminal() {
			return &InvalidStateTransitionError{From: apt.Status, To: models.StatusCompleted}
		}

		apt.Status = models.StatusCompleted
		if err := r.SaveAppointment(apt); err != nil {
			return err
		}
		return upsertTreatment(r, in)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("appointment completed", zap.String("appointment_id", apt.ID))
	s.invalidate(ctx, "appointments", "treatments")
	return apt, nil
}

// RecordTreatment upserts the treatment record for one of the doctor's own
// appointments without changing the appointment status.
func (s *Service) RecordTreatment(ctx context.Context, patientID string, in TreatmentInput) (*models.Treatment, error) {
	var treatment *models.Treatment
	err := s.repo.Transaction(func(r Repository) error {
		apt, err := r.GetAppointmentForDoctor(in.AppointmentID, in.DoctorID)
		if err != nil {
			return err
		}
		if apt.PatientID != patientID {
			return ErrNotFound
		}
		if err := upsertTreatment(r, in); err != nil {
			return err
		}
		treatment, err = r.GetTreatmentByAppointment(apt.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, "treatments")
	return treatment, nil
}

// CancelScope limits which appointments a cancel may touch. Empty fields are
// ignored; admins cancel with a zero scope.
type CancelScope struct {
	PatientID string
	DoctorID  string
}

// CancelAppointment transitions a Booked appointment to Cancelled. Cancelling
// an appointment in a terminal state fails with InvalidStateTransitionError
// and leaves the store unchanged.
func (s *Service) CancelAppointment(ctx context.Context, appointmentID string, scope CancelScope) (*models.Appointment, error) {
	var apt *models.Appointment
	err := s.repo.Transaction(func(r Repository) error {
		var err error
		switch {
		case scope.PatientID != "":
			apt, err = r.GetAppointmentForPatient(appointmentID, scope.PatientID)
		case scope.DoctorID != "":
			apt, err = r.GetAppointmentForDoctor(appointmentID, scope.DoctorID)
		default:
			apt, err = r.GetAppointment(appointmentID)
		}
		if err != nil {
			return err
		}
		if apt.Status.Terminal() {
			return &InvalidStateTransitionError{From: apt.Status, To: models.StatusCancelled}
		}

		apt.Status = models.StatusCancelled
		return r.SaveAppointment(apt)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("appointment cancelled", zap.String("appointment_id", apt.ID))
	s.invalidate(ctx, "appointments")
	return apt, nil
}

// DeclareAvailability records a doctor-declared open window. Availability is
// advisory: bookings are not checked against declared windows.
func (s *Service) DeclareAvailability(ctx context.Context, doctorID string, date time.Time, startTime, endTime string) (*models.DoctorAvailability, error) {
	if date.Before(s.today()) {
		return nil, ErrPastDate
	}
	if startTime >= endTime {
		return nil, ErrInvalidTimeRange
	}

	slot := &models.DoctorAvailability{
		DoctorID:    doctorID,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		IsAvailable: true,
	}

	err := s.repo.Transaction(func(r Repository) error {
		existing, err := r.CountAvailability(doctorID, date, startTime)
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateSlot
		}
		return r.CreateAvailability(slot)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("availability declared",
		zap.String("doctor_id", doctorID),
		zap.String("date", utils.FormatDate(date)),
		zap.String("start", startTime),
	)
	s.invalidate(ctx, "availability")
	return slot, nil
}

// RevokeAvailability deletes a slot owned by the doctor, failing with
// ErrNotFound otherwise.
func (s *Service) RevokeAvailability(ctx context.Context, doctorID, slotID string) error {
	err := s.repo.Transaction(func(r Repository) error {
		slot, err := r.GetAvailabilityForDoctor(slotID, doctorID)
		if err != nil {
			return err
		}
		return r.DeleteAvailability(slot)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, "availability")
	return nil
}

func upsertTreatment(r Repository, in TreatmentInput) error {
	treatment, err := r.GetTreatmentByAppointment(in.AppointmentID)
	if errors.Is(err, ErrNotFound) {
		return r.CreateTreatment(&models.Treatment{
			AppointmentID:    in.AppointmentID,
			Diagnosis:        in.Diagnosis,
			Prescription:     in.Prescription,
			TreatmentNotes:   in.TreatmentNotes,
			NextVisitDate:    in.NextVisitDate,
			FollowUpRequired: in.FollowUpRequired,
		})
	}
	if err != nil {
		return err
	}

	treatment.Diagnosis = in.Diagnosis
	treatment.Prescription = in.Prescription
	treatment.TreatmentNotes = in.TreatmentNotes
	treatment.NextVisitDate = in.NextVisitDate
	treatment.FollowUpRequired = in.FollowUpRequired
	return r.SaveTreatment(treatment)
}

func (s *Service) invalidate(ctx context.Context, prefixes ...string) {
	if s.cache != nil {
		s.cache.InvalidatePrefix(ctx, prefixes...)
	}
}
