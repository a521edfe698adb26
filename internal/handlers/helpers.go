package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-app-server/internal/middleware"
	"hospital-app-server/internal/models"
	"hospital-app-server/internal/scheduling"
	"hospital-app-server/internal/utils"
)

// currentDoctor resolves the authenticated user's doctor profile. Writes the
// error response and returns false when the profile is missing.
func currentDoctor(c *gin.Context, db *gorm.DB) (*models.Doctor, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}

	var doctor models.Doctor
	if err := db.First(&doctor, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &doctor, true
}

// currentPatient resolves the authenticated user's patient profile.
func currentPatient(c *gin.Context, db *gorm.DB) (*models.Patient, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}

	var patient models.Patient
	if err := db.First(&patient, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &patient, true
}

// respondSchedulingError maps scheduling errors onto HTTP statuses.
func respondSchedulingError(c *gin.Context, err error) {
	var transition *scheduling.InvalidStateTransitionError
	switch {
	case errors.Is(err, scheduling.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, scheduling.ErrSlotConflict),
		errors.Is(err, scheduling.ErrDuplicateSlot):
		utils.Conflict(c, err.Error())
	case errors.Is(err, scheduling.ErrPastDate),
		errors.Is(err, scheduling.ErrInvalidTimeRange),
		errors.Is(err, scheduling.ErrDoctorUnavailable):
		utils.BadRequest(c, err.Error())
	case errors.As(err, &transition):
		utils.BadRequest(c, transition.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}
