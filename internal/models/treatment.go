package models

import (
	"time"
)

// Treatment holds the clinical outcome of a completed appointment.
// At most one treatment exists per appointment; completing an appointment
// twice updates the same row.
type Treatment struct {
	BaseModel
	AppointmentID    string     `gorm:"size:36;uniqueIndex;not null" json:"appointmentId"`
	Diagnosis        string     `gorm:"type:text;not null" json:"diagnosis"`
	Prescription     string     `gorm:"type:text" json:"prescription,omitempty"`
	TreatmentNotes   string     `gorm:"type:text" json:"treatmentNotes,omitempty"`
	NextVisitDate    *time.Time `gorm:"type:date" json:"nextVisitDate,omitempty"`
	FollowUpRequired bool       `gorm:"default:false" json:"followUpRequired"`

	// Relations (serialized only when preloaded)
	Appointment *Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}
