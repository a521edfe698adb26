package models

import (
	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// User represents an account in the system. Every user owns at most one
// Doctor or Patient profile depending on its role.
type User struct {
	BaseModel
	Username      string `gorm:"uniqueIndex;size:80;not null" json:"username"`
	Email         string `gorm:"uniqueIndex;size:120;not null" json:"email"`
	Password      string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Role          Role   `gorm:"size:20;not null;index" json:"role"`
	IsActive      bool   `gorm:"default:true;not null" json:"isActive"`
	IsBlacklisted bool   `gorm:"default:false;not null" json:"isBlacklisted"`

	// Relations (not always preloaded)
	DoctorProfile  *Doctor  `gorm:"foreignKey:UserID" json:"-"`
	PatientProfile *Patient `gorm:"foreignKey:UserID" json:"-"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
