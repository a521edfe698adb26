package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment.
// The strings are persisted as-is and round-trip unchanged.
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "Booked"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// Terminal reports whether no further transitions are permitted.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment represents a booked slot with a doctor. The unique index on
// (doctor_id, appointment_date, appointment_time) is the store-level guard
// against double booking; the scheduling service performs the user-facing
// conflict check before writing.
type Appointment struct {
	BaseModel
	PatientID       string            `gorm:"size:36;not null;index" json:"patientId"`
	DoctorID        string            `gorm:"size:36;not null;index;uniqueIndex:uq_doctor_datetime" json:"doctorId"`
	AppointmentDate time.Time         `gorm:"type:date;not null;index;uniqueIndex:uq_doctor_datetime" json:"appointmentDate"`
	AppointmentTime string            `gorm:"size:5;not null;uniqueIndex:uq_doctor_datetime" json:"appointmentTime"`
	Status          AppointmentStatus `gorm:"size:20;default:'Booked';not null;index" json:"status"`
	Reason          string            `gorm:"type:text" json:"reason,omitempty"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`

	// Relations (serialized only when preloaded)
	Patient   *Patient   `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor    *Doctor    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Treatment *Treatment `gorm:"foreignKey:AppointmentID" json:"treatment,omitempty"`
}
