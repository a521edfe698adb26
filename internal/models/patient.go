package models

import (
	"time"
)

// Patient is a requester profile linked 1:1 to a User account.
type Patient struct {
	BaseModel
	UserID           string     `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	FullName         string     `gorm:"size:150;not null;index" json:"fullName"`
	Phone            string     `gorm:"size:20" json:"phone,omitempty"`
	DateOfBirth      *time.Time `gorm:"type:date" json:"dateOfBirth,omitempty"`
	Gender           string     `gorm:"size:10" json:"gender,omitempty"`
	BloodGroup       string     `gorm:"size:5" json:"bloodGroup,omitempty"`
	Address          string     `gorm:"type:text" json:"address,omitempty"`
	EmergencyContact string     `gorm:"size:20" json:"emergencyContact,omitempty"`
	MedicalHistory   string     `gorm:"type:text" json:"medicalHistory,omitempty"`
	Allergies        string     `gorm:"type:text" json:"allergies,omitempty"`

	// Relations (serialized only when preloaded)
	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
}
