package scheduling

import (
	"errors"
	"fmt"

	"hospital-app-server/internal/models"
)

var (
	// ErrNotFound is returned when a doctor, appointment or availability
	// slot does not exist or is not owned by the requesting user.
	ErrNotFound = errors.New("record not found")

	// ErrSlotConflict is returned when a non-cancelled appointment already
	// occupies the requested (doctor, date, time) slot.
	ErrSlotConflict = errors.New("this time slot is already booked")

	// ErrPastDate is returned when a booking or availability date is
	// before today.
	ErrPastDate = errors.New("date must not be in the past")

	// ErrDoctorUnavailable is returned when booking with a doctor whose
	// profile is flagged unavailable.
	ErrDoctorUnavailable = errors.New("doctor is not available")

	// ErrDuplicateSlot is returned when a doctor declares a second
	// availability slot for the same (date, start_time).
	ErrDuplicateSlot = errors.New("availability slot already exists")

	// ErrInvalidTimeRange is returned when an availability window does not
	// satisfy start < end.
	ErrInvalidTimeRange = errors.New("start time must be before end time")
)

// InvalidStateTransitionError reports an action attempted on an appointment
// in a terminal state, naming the current and attempted status.
type InvalidStateTransitionError struct {
	From models.AppointmentStatus
	To   models.AppointmentStatus
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("cannot transition appointment from %s to %s", e.From, e.To)
}
