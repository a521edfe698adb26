package scheduling

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"hospital-app-server/internal/models"
)

// Repository is the persistence surface the scheduling service depends on.
// All reads and writes issued through a Transaction callback run against the
// same database transaction and roll back together on error.
type Repository interface {
	Transaction(fn func(Repository) error) error

	GetDoctor(id string) (*models.Doctor, error)
	GetAppointment(id string) (*models.Appointment, error)
	GetAppointmentForPatient(id, patientID string) (*models.Appointment, error)
	GetAppointmentForDoctor(id, doctorID string) (*models.Appointment, error)
	CountSlotConflicts(doctorID string, date time.Time, timeOfDay string, excludeID string) (int64, error)
	CreateAppointment(apt *models.Appointment) error
	SaveAppointment(apt *models.Appointment) error

	GetTreatmentByAppointment(appointmentID string) (*models.Treatment, error)
	CreateTreatment(t *models.Treatment) error
	SaveTreatment(t *models.Treatment) error

	GetAvailabilityForDoctor(id, doctorID string) (*models.DoctorAvailability, error)
	CountAvailability(doctorID string, date time.Time, startTime string) (int64, error)
	CreateAvailability(slot *models.DoctorAvailability) error
	DeleteAvailability(slot *models.DoctorAvailability) error
}

// GormRepository implements Repository on top of a gorm connection or
// transaction handle.
type GormRepository struct {
	db *gorm.DB
}

// NewRepository creates a Repository backed by the given database handle.
func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Transaction runs fn against a repository bound to a database transaction.
// A duplicate-key failure at commit is translated to the conflict errors the
// service exposes, so a race that slips past the advisory conflict check
// still surfaces as a slot conflict rather than a generic store failure.
func (r *GormRepository) Transaction(fn func(Repository) error) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx})
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlotConflict
	}
	return err
}

func (r *GormRepository) GetDoctor(id string) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.db.First(&doctor, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &doctor, nil
}

func (r *GormRepository) GetAppointment(id string) (*models.Appointment, error) {
	var apt models.Appointment
	if err := r.db.First(&apt, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &apt, nil
}

func (r *GormRepository) GetAppointmentForPatient(id, patientID string) (*models.Appointment, error) {
	var apt models.Appointment
	if err := r.db.First(&apt, "id = ? AND patient_id = ?", id, patientID).Error; err != nil {
		return nil, translate(err)
	}
	return &apt, nil
}

func (r *GormRepository) GetAppointmentForDoctor(id, doctorID string) (*models.Appointment, error) {
	var apt models.Appointment
	if err := r.db.First(&apt, "id = ? AND doctor_id = ?", id, doctorID).Error; err != nil {
		return nil, translate(err)
	}
	return &apt, nil
}

// CountSlotConflicts counts non-cancelled appointments for the doctor at the
// exact (date, time). excludeID, when non-empty, leaves one appointment out
// of the count so a reschedule does not conflict with itself.
func (r *GormRepository) CountSlotConflicts(doctorID string, date time.Time, timeOfDay string, excludeID string) (int64, error) {
	query := r.db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ?", doctorID, date, timeOfDay).
		Where("status <> ?", models.StatusCancelled)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRepository) CreateAppointment(apt *models.Appointment) error {
	err := r.db.Create(apt).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlotConflict
	}
	return err
}

func (r *GormRepository) SaveAppointment(apt *models.Appointment) error {
	err := r.db.Save(apt).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlotConflict
	}
	return err
}

func (r *GormRepository) GetTreatmentByAppointment(appointmentID string) (*models.Treatment, error) {
	var treatment models.Treatment
	if err := r.db.First(&treatment, "appointment_id = ?", appointmentID).Error; err != nil {
		return nil, translate(err)
	}
	return &treatment, nil
}

func (r *GormRepository) CreateTreatment(t *models.Treatment) error {
	return r.db.Create(t).Error
}

func (r *GormRepository) SaveTreatment(t *models.Treatment) error {
	return r.db.Save(t).Error
}

func (r *GormRepository) GetAvailabilityForDoctor(id, doctorID string) (*models.DoctorAvailability, error) {
	var slot models.DoctorAvailability
	if err := r.db.First(&slot, "id = ? AND doctor_id = ?", id, doctorID).Error; err != nil {
		return nil, translate(err)
	}
	return &slot, nil
}

func (r *GormRepository) CountAvailability(doctorID string, date time.Time, startTime string) (int64, error) {
	var count int64
	err := r.db.Model(&models.DoctorAvailability{}).
		Where("doctor_id = ? AND date = ? AND start_time = ?", doctorID, date, startTime).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRepository) CreateAvailability(slot *models.DoctorAvailability) error {
	err := r.db.Create(slot).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateSlot
	}
	return err
}

func (r *GormRepository) DeleteAvailability(slot *models.DoctorAvailability) error {
	return r.db.Delete(slot).Error
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
