package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hospital-app-server/internal/models"
	"hospital-app-server/internal/scheduling"
	"hospital-app-server/internal/tasks"
	"hospital-app-server/internal/utils"
)

// PatientHandler serves the patient-facing surface: browsing departments and
// doctors, booking and managing appointments, treatment history and exports.
type PatientHandler struct {
	DB        *gorm.DB
	Scheduler *scheduling.Service
	Queue     *tasks.Queue
	Logger    *zap.Logger
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB, scheduler *scheduling.Service, queue *tasks.Queue, logger *zap.Logger) *PatientHandler {
	return &PatientHandler{DB: db, Scheduler: scheduler, Queue: queue, Logger: logger}
}

// Dashboard returns departments plus the patient's appointment counts.
func (h *PatientHandler) Dashboard(c *gin.Context) {
	patient, ok := currentPatient(c, h.DB)
	if !ok {
		return
	}

	var departments []models.Department
	if err := h.DB.Find(&departments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch departments: "+err.Error())
		return
	}

	var upcoming, total int64
	today := utils.Today()
	h.DB.Model(&models.Appointment{}).
		Where("patient_id = ? AND appointment_date >= ? AND status = ?", patient.ID, today, models.StatusBooked).
		Count(&upcoming)
	h.DB.Model(&models.Appointment{}).Where("patient_id = ?", patient.ID).Count(&total)

	utils.Success(c, "Dashboard fetched successfully", gin.H{
		"departments":          departments,
		"upcomingAppointments": upcoming,
		"totalAppointments":    total,
	})
}

// GetDepartments lists all departments. Responses are cached by middleware.
func (h *PatientHandler) GetDepartments(c *gin.Context) {
	var departments []models.Department
	if err := h.DB.Find(&departments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch departments: "+err.Error())
		return
	}
	utils.Success(c, "Departments fetched successfully", gin.H{"departments": departments})
}

// GetDepartmentDoctors lists available doctors in one department.
func (h *PatientHandler) GetDepartmentDoctors(c *gin.Context) {
	deptID := c.Param("id")

	var department models.Department
	if err := h.DB.First(&department, "id = ?", deptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Department not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var doctors []models.Doctor
	if err := h.DB.Where("department_id = ? AND is_available = ?", deptID, true).Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	utils.Success(c, "Doctors fetched successfully", gin.H{
		"department": department,
		"doctors":    doctors,
	})
}

// GetDoctors lists available doctors, optionally filtered by department.
func (h *PatientHandler) GetDoctors(c *gin.Context) {
	query := h.DB.Where("is_available = ?", true)
	if deptID := c.Query("department_id"); deptID != "" {
		query = query.Where("department_id = ?", deptID)
	}

	var doctors []models.Doctor
	if err := query.Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}
	utils.Success(c, "Doctors fetched successfully", gin.H{"doctors": doctors})
}

// GetDoctor returns one doctor with its declared availability for the next
// seven days.
func (h *PatientHandler) GetDoctor(c *gin.Context) {
	doctorID := c.Param("id")

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	today := utils.Today()
	weekFromNow := today.AddDate(0, 0, 7)

	var availability []models.DoctorAvailability
	err := h.DB.
		Where("doctor_id = ? AND date >= ? AND date <= ? AND is_available = ?", doctorID, today, weekFromNow, true).
		Order("date asc, start_time asc").
		Find(&availability).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch availability: "+err.Error())
		return
	}

	utils.Success(c, "Doctor fetched successfully", gin.H{
		"doctor":       doctor,
		"availability": availability,
	})
}

// GetAppointments lists the patient's appointments with optional filters.
func (h *PatientHandler) GetAppointments(c *gin.Context) {
	patient, ok := currentPatient(c, h.DB)
	if !ok {
		return
	}

	query := h.DB.Preload("Doctor.Department").Preload("Treatment").
		Where("patient_id = ?", patient.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if c.Query("upcoming") == "true" {
		query = query.Where("appointment_date >= ?", utils.Today())
	}
	if c.Query("past") == "true" {
		query = query.Where("appointment_date < ?", utils.Today())
	}

	var appointments []models.Appointment
	if err := query.Order("appointment_date desc").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}
	utils.Success(c, "Appointments fetched successfully", gin.H{"appointments": appointments})
}

// GetAppointment returns one of the patient's own appointments.
func (h *PatientHandler) GetAppointment(c *gin.Context) {
	patient, ok := currentPatient(c, h.DB)
	if !ok {
		return
	}

	var appointment models.Appointment
	err := h.DB.Preload("Doctor.Department").Preload("Treatment").
		First(&appointment, "id = ? AND patient_id = ?", c.Param("id"), patient.ID).Error
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

// BookAppointmentRequest represents the booking body.
type BookAppointmentRequest struct {
	DoctorID        string `json:"doctorId" binding:"required,uuid"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	AppointmentTime string `json:"appointmentTime" binding:"required"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
}

// BookAppointment books a slot with a doctor for the authenticated patient.
func (h *PatientHandler) BookAppointment(c *gin.Context) {
	patient, ok := currentPatient(c, h.DB)
	if !ok {
		return
	}

	var req BookAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	date, err := utils.ParseDate(req.AppointmentDate)
	if err != nil {
		utils.BadRequest(c, "Invalid appointmentDate format, expected YYYY-MM-DD")
		return
	}
	timeOfDay, err := utils.ParseTime(req.AppointmentTime)
	if err != nil {
		utils.BadRequest(c, "Invalid appointmentTime format, expected HH:MM")
		return
	}

	appointment, err := h.Scheduler.BookAppointment(c.Request.Context(), scheduling.BookingInput{
		PatientID: patient.ID,
		DoctorID:  req.DoctorID,
		Date:      date,
		Time:      timeOfDay,
		Reason:    req.Reason,
		Notes:     req.Notes,
	})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Created(c, "Appointment booked successfully", gin.H{"appointment": appointment})
}

// RescheduleAppointmentRequest represents the reschedule body.
type RescheduleAppointmentRequest struct {
	AppointmentDate string  `json:"appointmentDate" binding:"required"`
	AppointmentTime string  `json:"appointmentTime" binding:"required"`
	Reason          *string `json:"reason"`
	Notes           *string `json:"notes"`
}

// RescheduleAppointment moves one of the patient's Booked appointments to a
// new slot.
func (h *PatientHandler) RescheduleAppointment(c *gin.Context) {
	patient, ok := currentPatient(c, h.DB)
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	date, err := utils.ParseDate(req.AppointmentDate)
	if err != nil {
		utils.BadRequest(c, "Invalid appointmentDate format, expected YYYY-MM-DD")
		return
	}
	timeOfDay, err := utils.ParseTime(req.AppointmentTime)
	if err != nil {
		utils.BadRequest(c, "Invalid appointmentTime format, expected HH:MM")
		return
	}

	appointment, err := h.Scheduler.RescheduleAppointment(c.Request.Context(), scheduling.RescheduleInput{
		AppointmentID: c.Param("id"),
		PatientID:     patient.ID,
		Date:          date,
		Time:          timeOfDay,
		Reason:        req.Reason,
		Notes:         req.Notes,
	})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Appointment rescheduled successfully", gin.H{"appointment": appointment})
}

// CancelAppointment cancels one of the patient's Booked appointments.
func (h *PatientHandler) CancelAppointment(c *gin.Context) {
	patient, ok := currentPatient(c, h.DB)
	if !ok {
		return
	}

	appointment, err := h.Scheduler.CancelAppointment(c.Request.Context(), c.Param("id"),
		scheduling.CancelScope{PatientID: patient.ID})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Appointment cancelled successfully", gin.H{"appointment": appointment})
}

// GetTreatments returns the patient's full treatment history.
func (h *PatientHandler) GetTreatments(c *gin.Context) {
	patient, ok := currentPatient(c, h.DB)
	if !ok {
		return
	}

	var treatments []models.Treatment
	err := h.DB.Preload("Appointment.Doctor.Department").
		Joins("JOIN appointments ON appointments.id = treatments.appointment_id").
		Where("appointments.patient_id = ?", patient.ID).
		Find(&treatments).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch treatments: "+err.Error())
		return
	}
	utils.Success(c, "Treatments fetched successfully", gin.H{"treatments": treatments})
}

// GetTreatment returns one treatment record owned by the patient.
func (h *PatientHandler) GetTreatment(c *gin.Context) {
	patient, ok := currentPatient(c, h.DB)
	if !ok {
		return
	}

	var treatment models.Treatment
	err := h.DB.Preload("Appointment.Doctor.Department").
		Joins("JOIN appointments ON appointments.id = treatments.appointment_id").
		Where("treatments.id = ? AND appointments.patient_id = ?", c.Param("id"), patient.ID).
		First(&treatment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Treatment record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Treatment fetched successfully", gin.H{"treatment": treatment})
}

// GetProfile returns the patient's own profile.
func (h *PatientHandler) GetProfile(c *gin.Context) {
	patient, ok := currentPatient(c, h.DB)
	if !ok {
		return
	}
	utils.Success(c, "Profile fetched successfully", gin.H{"profile": patient})
}

// UpdateProfileRequest represents the patient profile update body. Pointer
// fields distinguish "absent" from "set to empty".
type UpdateProfileRequest struct {
	FullName         *string `json:"fullName"`
	Phone            *string `json:"phone"`
	DateOfBirth      *string `json:"dateOfBirth"`
	Gender           *string `json:"gender"`
	BloodGroup       *string `json:"bloodGroup"`
	Address          *string `json:"address"`
	EmergencyContact *string `json:"emergencyContact"`
	MedicalHistory   *string `json:"medicalHistory"`
	Allergies        *string `json:"allergies"`
}

// UpdateProfile updates the patient's own profile.
func (h *PatientHandler) UpdateProfile(c *gin.Context) {
	patient, ok := currentPatient(c, h.DB)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.FullName != nil {
		patient.FullName = *req.FullName
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.DateOfBirth != nil {
		dob, err := utils.ParseDate(*req.DateOfBirth)
		if err != nil {
			utils.BadRequest(c, "Invalid dateOfBirth format, expected YYYY-MM-DD")
			return
		}
		patient.DateOfBirth = &dob
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.BloodGroup != nil {
		patient.BloodGroup = *req.BloodGroup
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.EmergencyContact != nil {
		patient.EmergencyContact = *req.EmergencyContact
	}
	if req.MedicalHistory != nil {
		patient.MedicalHistory = *req.MedicalHistory
	}
	if req.Allergies != nil {
		patient.Allergies = *req.Allergies
	}

	if err := h.DB.Save(patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to update profile: "+err.Error())
		return
	}
	utils.Success(c, "Profile updated successfully", gin.H{"profile": patient})
}

// ExportTreatments queues a background job that emails the patient a CSV of
// their treatment history.
func (h *PatientHandler) ExportTreatments(c *gin.Context) {
	patient, ok := currentPatient(c, h.DB)
	if !ok {
		return
	}

	job, err := h.Queue.Enqueue(c.Request.Context(), tasks.JobExportTreatments,
		tasks.ExportPayload{PatientID: patient.ID})
	if err != nil {
		utils.InternalServerError(c, "Failed to start export: "+err.Error())
		return
	}

	h.Logger.Info("treatment export queued",
		zap.String("patient_id", patient.ID), zap.String("job_id", job.ID))
	utils.Accepted(c, "Export job started. You will receive an email when it's ready.", gin.H{
		"taskId": job.ID,
		"status": job.Status,
	})
}

// ExportStatus reports the state of a previously queued export job.
func (h *PatientHandler) ExportStatus(c *gin.Context) {
	if _, ok := currentPatient(c, h.DB); !ok {
		return
	}

	job, err := h.Queue.Status(c.Request.Context(), c.Param("taskId"))
	if err != nil {
		utils.NotFound(c, "Export job not found")
		return
	}

	resp := gin.H{"taskId": job.ID, "status": job.Status}
	if job.Error != "" {
		resp["message"] = job.Error
	}
	utils.Success(c, "Export status fetched", resp)
}
