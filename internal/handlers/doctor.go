package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hospital-app-server/internal/models"
	"hospital-app-server/internal/scheduling"
	"hospital-app-server/internal/utils"
)

// DoctorHandler serves the doctor-facing surface: the appointment worklist,
// completion with treatment records, and availability management.
type DoctorHandler struct {
	DB        *gorm.DB
	Scheduler *scheduling.Service
	Logger    *zap.Logger
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB, scheduler *scheduling.Service, logger *zap.Logger) *DoctorHandler {
	return &DoctorHandler{DB: db, Scheduler: scheduler, Logger: logger}
}

// Dashboard returns the doctor's workload counters.
func (h *DoctorHandler) Dashboard(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	today := utils.Today()
	weekFromNow := today.AddDate(0, 0, 7)

	var todayCount, weekCount, completedCount, totalPatients int64
	h.DB.Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND status = ?", doctor.ID, today, models.StatusBooked).
		Count(&todayCount)
	h.DB.Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date BETWEEN ? AND ? AND status = ?", doctor.ID, today, weekFromNow, models.StatusBooked).
		Count(&weekCount)
	h.DB.Model(&models.Appointment{}).
		Where("doctor_id = ? AND status = ?", doctor.ID, models.StatusCompleted).
		Count(&completedCount)
	h.DB.Model(&models.Appointment{}).
		Where("doctor_id = ?", doctor.ID).
		Distinct("patient_id").
		Count(&totalPatients)

	utils.Success(c, "Dashboard fetched successfully", gin.H{
		"todayAppointments":     todayCount,
		"weekAppointments":      weekCount,
		"completedAppointments": completedCount,
		"totalPatients":         totalPatients,
	})
}

// GetAppointments lists the doctor's appointments with optional filters.
func (h *DoctorHandler) GetAppointments(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	query := h.DB.Preload("Patient").Preload("Treatment").
		Where("doctor_id = ?", doctor.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := utils.ParseDate(dateStr)
		if err != nil {
			utils.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		query = query.Where("appointment_date = ?", date)
	}
	if c.Query("upcoming") == "true" {
		query = query.Where("appointment_date >= ?", utils.Today())
	}

	var appointments []models.Appointment
	if err := query.Order("appointment_date asc, appointment_time asc").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}
	utils.Success(c, "Appointments fetched successfully", gin.H{"appointments": appointments})
}

// GetAppointment returns one of the doctor's own appointments.
func (h *DoctorHandler) GetAppointment(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	var appointment models.Appointment
	err := h.DB.Preload("Patient").Preload("Treatment").
		First(&appointment, "id = ? AND doctor_id = ?", c.Param("id"), doctor.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Appointment fetched successfully", gin.H{"appointment": appointment})
}

// CompleteAppointmentRequest represents the completion body. Diagnosis is
// the only required treatment field.
type CompleteAppointmentRequest struct {
	Diagnosis        string `json:"diagnosis" binding:"required"`
	Prescription     string `json:"prescription"`
	TreatmentNotes   string `json:"treatmentNotes"`
	NextVisitDate    string `json:"nextVisitDate"`
	FollowUpRequired bool   `json:"followUpRequired"`
}

// CompleteAppointment marks one of the doctor's Booked appointments as
// Completed and records the treatment.
func (h *DoctorHandler) CompleteAppointment(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	var req CompleteAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	input := scheduling.TreatmentInput{
		AppointmentID:    c.Param("id"),
		DoctorID:         doctor.ID,
		Diagnosis:        req.Diagnosis,
		Prescription:     req.Prescription,
		TreatmentNotes:   req.TreatmentNotes,
		FollowUpRequired: req.FollowUpRequired,
	}
	if req.NextVisitDate != "" {
		nextVisit, err := utils.ParseDate(req.NextVisitDate)
		if err != nil {
			utils.BadRequest(c, "Invalid nextVisitDate format, expected YYYY-MM-DD")
			return
		}
		input.NextVisitDate = &nextVisit
	}

	appointment, err := h.Scheduler.CompleteAppointment(c.Request.Context(), input)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Appointment completed successfully", gin.H{"appointment": appointment})
}

// CancelAppointment cancels one of the doctor's Booked appointments.
func (h *DoctorHandler) CancelAppointment(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	appointment, err := h.Scheduler.CancelAppointment(c.Request.Context(), c.Param("id"),
		scheduling.CancelScope{DoctorID: doctor.ID})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Appointment cancelled successfully", gin.H{"appointment": appointment})
}

// GetPatients lists the distinct patients who have appointments with this
// doctor.
func (h *DoctorHandler) GetPatients(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	var patients []models.Patient
	err := h.DB.
		Where("id IN (?)", h.DB.Model(&models.Appointment{}).
			Select("patient_id").
			Where("doctor_id = ?", doctor.ID)).
		Find(&patients).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}
	utils.Success(c, "Patients fetched successfully", gin.H{"patients": patients})
}

// GetPatientHistory returns a patient's appointment and treatment history
// with this doctor.
func (h *DoctorHandler) GetPatientHistory(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var appointments []models.Appointment
	err := h.DB.Preload("Treatment").
		Where("patient_id = ? AND doctor_id = ?", patient.ID, doctor.ID).
		Order("appointment_date desc").
		Find(&appointments).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch history: "+err.Error())
		return
	}

	utils.Success(c, "Patient history fetched successfully", gin.H{
		"patient":      patient,
		"appointments": appointments,
	})
}

// RecordTreatmentRequest represents the treatment upsert body used outside
// the completion flow.
type RecordTreatmentRequest struct {
	AppointmentID    string `json:"appointmentId" binding:"required,uuid"`
	Diagnosis        string `json:"diagnosis" binding:"required"`
	Prescription     string `json:"prescription"`
	TreatmentNotes   string `json:"treatmentNotes"`
	NextVisitDate    string `json:"nextVisitDate"`
	FollowUpRequired bool   `json:"followUpRequired"`
}

// RecordTreatment creates or updates the treatment record for one of the
// doctor's appointments with the given patient.
func (h *DoctorHandler) RecordTreatment(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	var req RecordTreatmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	input := scheduling.TreatmentInput{
		AppointmentID:    req.AppointmentID,
		DoctorID:         doctor.ID,
		Diagnosis:        req.Diagnosis,
		Prescription:     req.Prescription,
		TreatmentNotes:   req.TreatmentNotes,
		FollowUpRequired: req.FollowUpRequired,
	}
	if req.NextVisitDate != "" {
		nextVisit, err := utils.ParseDate(req.NextVisitDate)
		if err != nil {
			utils.BadRequest(c, "Invalid nextVisitDate format, expected YYYY-MM-DD")
			return
		}
		input.NextVisitDate = &nextVisit
	}

	treatment, err := h.Scheduler.RecordTreatment(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Treatment updated successfully", gin.H{"treatment": treatment})
}

// GetAvailability lists the doctor's declared slots for the next seven days.
func (h *DoctorHandler) GetAvailability(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	today := utils.Today()
	weekFromNow := today.AddDate(0, 0, 7)

	var availability []models.DoctorAvailability
	err := h.DB.
		Where("doctor_id = ? AND date >= ? AND date <= ?", doctor.ID, today, weekFromNow).
		Order("date asc, start_time asc").
		Find(&availability).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch availability: "+err.Error())
		return
	}
	utils.Success(c, "Availability fetched successfully", gin.H{"availability": availability})
}

// DeclareAvailabilityRequest represents the availability declaration body.
type DeclareAvailabilityRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// DeclareAvailability declares an open window for the doctor.
func (h *DoctorHandler) DeclareAvailability(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	var req DeclareAvailabilityRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		utils.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}
	start, err := utils.ParseTime(req.StartTime)
	if err != nil {
		utils.BadRequest(c, "Invalid startTime format, expected HH:MM")
		return
	}
	end, err := utils.ParseTime(req.EndTime)
	if err != nil {
		utils.BadRequest(c, "Invalid endTime format, expected HH:MM")
		return
	}

	slot, err := h.Scheduler.DeclareAvailability(c.Request.Context(), doctor.ID, date, start, end)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Created(c, "Availability set successfully", gin.H{"availability": slot})
}

// RevokeAvailability deletes one of the doctor's own availability slots.
func (h *DoctorHandler) RevokeAvailability(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	if err := h.Scheduler.RevokeAvailability(c.Request.Context(), doctor.ID, c.Param("id")); err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Availability slot deleted successfully", nil)
}

// GetProfile returns the doctor's own profile.
func (h *DoctorHandler) GetProfile(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}
	utils.Success(c, "Profile fetched successfully", gin.H{"profile": doctor})
}

// UpdateDoctorProfileRequest represents the doctor's self-service profile
// update body; only phone and bio are doctor-editable.
type UpdateDoctorProfileRequest struct {
	Phone *string `json:"phone"`
	Bio   *string `json:"bio"`
}

// UpdateProfile updates the doctor's own profile.
func (h *DoctorHandler) UpdateProfile(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	var req UpdateDoctorProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.Phone != nil {
		doctor.Phone = *req.Phone
	}
	if req.Bio != nil {
		doctor.Bio = *req.Bio
	}

	if err := h.DB.Save(doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to update profile: "+err.Error())
		return
	}
	utils.Success(c, "Profile updated successfully", gin.H{"profile": doctor})
}
