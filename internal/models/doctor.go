package models

import (
	"time"
)

// Doctor is a provider profile linked 1:1 to a User account.
type Doctor struct {
	BaseModel
	UserID          string  `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	FullName        string  `gorm:"size:150;not null;index" json:"fullName"`
	Phone           string  `gorm:"size:20" json:"phone,omitempty"`
	DepartmentID    string  `gorm:"size:36;not null;index" json:"departmentId"`
	Qualification   string  `gorm:"size:200" json:"qualification,omitempty"`
	ExperienceYears int     `gorm:"default:0" json:"experienceYears"`
	ConsultationFee float64 `gorm:"default:0" json:"consultationFee"`
	IsAvailable     bool    `gorm:"default:true;not null" json:"isAvailable"`
	Bio             string  `gorm:"type:text" json:"bio,omitempty"`

	// Relations (serialized only when preloaded)
	User              *User                `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Department        *Department          `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Appointments      []Appointment        `gorm:"foreignKey:DoctorID" json:"-"`
	AvailabilitySlots []DoctorAvailability `gorm:"foreignKey:DoctorID" json:"-"`
}

// DoctorAvailability is a doctor-declared open window. It is advisory
// metadata only: bookings are not required to fall inside a window.
// The unique index on (doctor_id, date, start_time) prevents duplicate
// slot declarations at the store level.
type DoctorAvailability struct {
	BaseModel
	DoctorID    string    `gorm:"size:36;not null;index;uniqueIndex:uq_doctor_slot" json:"doctorId"`
	Date        time.Time `gorm:"type:date;not null;index;uniqueIndex:uq_doctor_slot" json:"date"`
	StartTime   string    `gorm:"size:5;not null;uniqueIndex:uq_doctor_slot" json:"startTime"`
	EndTime     string    `gorm:"size:5;not null" json:"endTime"`
	IsAvailable bool      `gorm:"default:true;not null" json:"isAvailable"`
}
