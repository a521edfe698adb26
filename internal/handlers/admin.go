package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hospital-app-server/internal/cache"
	"hospital-app-server/internal/models"
	"hospital-app-server/internal/utils"
)

// AdminHandler serves the administrative surface: department, doctor and
// patient management plus system-wide appointment views.
type AdminHandler struct {
	DB     *gorm.DB
	Cache  *cache.Client
	Logger *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *gorm.DB, cacheClient *cache.Client, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{DB: db, Cache: cacheClient, Logger: logger}
}

// Dashboard returns system-wide entity counts.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	var doctors, patients, departments, appointments, booked int64
	h.DB.Model(&models.Doctor{}).Count(&doctors)
	h.DB.Model(&models.Patient{}).Count(&patients)
	h.DB.Model(&models.Department{}).Count(&departments)
	h.DB.Model(&models.Appointment{}).Count(&appointments)
	h.DB.Model(&models.Appointment{}).Where("status = ?", models.StatusBooked).Count(&booked)

	utils.Success(c, "Dashboard fetched successfully", gin.H{
		"totalDoctors":       doctors,
		"totalPatients":      patients,
		"totalDepartments":   departments,
		"totalAppointments":  appointments,
		"bookedAppointments": booked,
	})
}

// GetDepartments lists all departments with their doctor counts.
func (h *AdminHandler) GetDepartments(c *gin.Context) {
	var departments []models.Department
	if err := h.DB.Find(&departments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch departments: "+err.Error())
		return
	}
	utils.Success(c, "Departments fetched successfully", gin.H{"departments": departments})
}

// DepartmentRequest represents the create/update department body.
type DepartmentRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// CreateDepartment creates a department with a unique name.
func (h *AdminHandler) CreateDepartment(c *gin.Context) {
	var req DepartmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	department := models.Department{Name: req.Name, Description: req.Description}
	if err := h.DB.Create(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "Department already exists")
			return
		}
		utils.InternalServerError(c, "Failed to create department: "+err.Error())
		return
	}

	h.Cache.InvalidatePrefix(c.Request.Context(), "departments")
	utils.Created(c, "Department created successfully", gin.H{"department": department})
}

// UpdateDepartment renames or re-describes a department.
func (h *AdminHandler) UpdateDepartment(c *gin.Context) {
	var department models.Department
	if err := h.DB.First(&department, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Department not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var req DepartmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	department.Name = req.Name
	department.Description = req.Description
	if err := h.DB.Save(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "Department name already exists")
			return
		}
		utils.InternalServerError(c, "Failed to update department: "+err.Error())
		return
	}

	h.Cache.InvalidatePrefix(c.Request.Context(), "departments")
	utils.Success(c, "Department updated successfully", gin.H{"department": department})
}

// DeleteDepartment removes an empty department. Departments with doctors
// attached cannot be deleted.
func (h *AdminHandler) DeleteDepartment(c *gin.Context) {
	var department models.Department
	if err := h.DB.First(&department, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Department not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var doctorCount int64
	h.DB.Model(&models.Doctor{}).Where("department_id = ?", department.ID).Count(&doctorCount)
	if doctorCount > 0 {
		utils.BadRequest(c, "Cannot delete department with existing doctors")
		return
	}

	if err := h.DB.Delete(&department).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete department: "+err.Error())
		return
	}

	h.Cache.InvalidatePrefix(c.Request.Context(), "departments")
	utils.Success(c, "Department deleted successfully", nil)
}

// GetDoctors lists doctors with optional department and availability
// filters.
func (h *AdminHandler) GetDoctors(c *gin.Context) {
	query := h.DB.Preload("User").Preload("Department")
	if deptID := c.Query("department_id"); deptID != "" {
		query = query.Where("department_id = ?", deptID)
	}
	if avail := c.Query("is_available"); avail != "" {
		query = query.Where("is_available = ?", avail == "true")
	}

	var doctors []models.Doctor
	if err := query.Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}
	utils.Success(c, "Doctors fetched successfully", gin.H{"doctors": doctors})
}

// GetDoctor returns one doctor with its account details.
func (h *AdminHandler) GetDoctor(c *gin.Context) {
	var doctor models.Doctor
	err := h.DB.Preload("User").Preload("Department").First(&doctor, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Doctor fetched successfully", gin.H{"doctor": doctor})
}

// CreateDoctorRequest represents the doctor account creation body.
type CreateDoctorRequest struct {
	Username        string  `json:"username" binding:"required,min=3,max=80"`
	Email           string  `json:"email" binding:"required,email"`
	Password        string  `json:"password" binding:"required,min=6"`
	FullName        string  `json:"fullName" binding:"required,max=150"`
	DepartmentID    string  `json:"departmentId" binding:"required,uuid"`
	Phone           string  `json:"phone"`
	Qualification   string  `json:"qualification"`
	ExperienceYears int     `json:"experienceYears"`
	ConsultationFee float64 `json:"consultationFee"`
	Bio             string  `json:"bio"`
	IsAvailable     *bool   `json:"isAvailable"`
}

// CreateDoctor creates a doctor account and profile in one transaction.
func (h *AdminHandler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var department models.Department
	if err := h.DB.First(&department, "id = ?", req.DepartmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Department not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var count int64
	h.DB.Model(&models.User{}).Where("username = ? OR email = ?", req.Username, req.Email).Count(&count)
	if count > 0 {
		utils.Conflict(c, "Username or email already exists")
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     models.RoleDoctor,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password")
		return
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}
	doctor := models.Doctor{
		FullName:        req.FullName,
		Phone:           req.Phone,
		DepartmentID:    req.DepartmentID,
		Qualification:   req.Qualification,
		ExperienceYears: req.ExperienceYears,
		ConsultationFee: req.ConsultationFee,
		Bio:             req.Bio,
		IsAvailable:     isAvailable,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		doctor.UserID = user.ID
		return tx.Create(&doctor).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "Username or email already exists")
			return
		}
		utils.InternalServerError(c, "Failed to create doctor: "+err.Error())
		return
	}

	h.Cache.InvalidatePrefix(c.Request.Context(), "doctors")
	h.Logger.Info("doctor created", zap.String("doctor_id", doctor.ID))
	utils.Created(c, "Doctor created successfully", gin.H{"doctor": doctor})
}

// UpdateDoctorRequest represents the admin doctor update body.
type UpdateDoctorRequest struct {
	FullName        *string  `json:"fullName"`
	Phone           *string  `json:"phone"`
	DepartmentID    *string  `json:"departmentId"`
	Qualification   *string  `json:"qualification"`
	ExperienceYears *int     `json:"experienceYears"`
	ConsultationFee *float64 `json:"consultationFee"`
	Bio             *string  `json:"bio"`
	IsAvailable     *bool    `json:"isAvailable"`
	Email           *string  `json:"email"`
}

// UpdateDoctor updates a doctor profile and optionally its account email.
func (h *AdminHandler) UpdateDoctor(c *gin.Context) {
	var doctor models.Doctor
	if err := h.DB.Preload("User").First(&doctor, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var req UpdateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.DepartmentID != nil {
		var department models.Department
		if err := h.DB.First(&department, "id = ?", *req.DepartmentID).Error; err != nil {
			utils.NotFound(c, "Department not found")
			return
		}
		doctor.DepartmentID = *req.DepartmentID
	}
	if req.FullName != nil {
		doctor.FullName = *req.FullName
	}
	if req.Phone != nil {
		doctor.Phone = *req.Phone
	}
	if req.Qualification != nil {
		doctor.Qualification = *req.Qualification
	}
	if req.ExperienceYears != nil {
		doctor.ExperienceYears = *req.ExperienceYears
	}
	if req.ConsultationFee != nil {
		doctor.ConsultationFee = *req.ConsultationFee
	}
	if req.Bio != nil {
		doctor.Bio = *req.Bio
	}
	if req.IsAvailable != nil {
		doctor.IsAvailable = *req.IsAvailable
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if req.Email != nil {
			var count int64
			tx.Model(&models.User{}).Where("email = ? AND id <> ?", *req.Email, doctor.UserID).Count(&count)
			if count > 0 {
				return gorm.ErrDuplicatedKey
			}
			if err := tx.Model(&models.User{}).Where("id = ?", doctor.UserID).Update("email", *req.Email).Error; err != nil {
				return err
			}
		}
		return tx.Save(&doctor).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "Email already exists")
			return
		}
		utils.InternalServerError(c, "Failed to update doctor: "+err.Error())
		return
	}

	h.Cache.InvalidatePrefix(c.Request.Context(), "doctors")
	utils.Success(c, "Doctor updated successfully", gin.H{"doctor": doctor})
}

// DeleteDoctor blacklists a doctor's account instead of deleting the row.
// Doctors with pending booked appointments cannot be removed.
func (h *AdminHandler) DeleteDoctor(c *gin.Context) {
	var doctor models.Doctor
	if err := h.DB.Preload("User").First(&doctor, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var pending int64
	h.DB.Model(&models.Appointment{}).
		Where("doctor_id = ? AND status = ?", doctor.ID, models.StatusBooked).
		Count(&pending)
	if pending > 0 {
		utils.BadRequest(c, "Cannot delete doctor with pending appointments")
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", doctor.UserID).Update("is_blacklisted", true).Error; err != nil {
			return err
		}
		return tx.Model(&doctor).Update("is_available", false).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to blacklist doctor: "+err.Error())
		return
	}

	h.Cache.InvalidatePrefix(c.Request.Context(), "doctors")
	utils.Success(c, "Doctor blacklisted successfully", nil)
}

// GetPatients lists all patients.
func (h *AdminHandler) GetPatients(c *gin.Context) {
	var patients []models.Patient
	if err := h.DB.Preload("User").Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}
	utils.Success(c, "Patients fetched successfully", gin.H{"patients": patients})
}

// GetPatient returns one patient with its account details.
func (h *AdminHandler) GetPatient(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.Preload("User").First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Patient fetched successfully", gin.H{"patient": patient})
}

// UpdatePatient updates a patient profile on behalf of an administrator.
func (h *AdminHandler) UpdatePatient(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
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

	if err := h.DB.Save(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to update patient: "+err.Error())
		return
	}
	utils.Success(c, "Patient updated successfully", gin.H{"patient": patient})
}

// BlacklistPatient flags a patient's account as blacklisted.
func (h *AdminHandler) BlacklistPatient(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	err := h.DB.Model(&models.User{}).Where("id = ?", patient.UserID).Update("is_blacklisted", true).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to blacklist patient: "+err.Error())
		return
	}
	utils.Success(c, "Patient blacklisted successfully", nil)
}

// GetAppointments lists all appointments with optional filters.
func (h *AdminHandler) GetAppointments(c *gin.Context) {
	query := h.DB.Preload("Patient").Preload("Doctor.Department").Preload("Treatment")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if doctorID := c.Query("doctor_id"); doctorID != "" {
		query = query.Where("doctor_id = ?", doctorID)
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := utils.ParseDate(dateStr)
		if err != nil {
			utils.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		query = query.Where("appointment_date = ?", date)
	}

	var appointments []models.Appointment
	if err := query.Order("appointment_date desc, appointment_time desc").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}
	utils.Success(c, "Appointments fetched successfully", gin.H{"appointments": appointments})
}

// SearchDoctors searches doctors by name.
func (h *AdminHandler) SearchDoctors(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		utils.BadRequest(c, "Query parameter q is required")
		return
	}

	var doctors []models.Doctor
	err := h.DB.Preload("Department").
		Where("full_name LIKE ?", "%"+q+"%").
		Find(&doctors).Error
	if err != nil {
		utils.InternalServerError(c, "Search failed: "+err.Error())
		return
	}
	utils.Success(c, "Search results", gin.H{"doctors": doctors})
}

// SearchPatients searches patients by name.
func (h *AdminHandler) SearchPatients(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		utils.BadRequest(c, "Query parameter q is required")
		return
	}

	var patients []models.Patient
	if err := h.DB.Where("full_name LIKE ?", "%"+q+"%").Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Search failed: "+err.Error())
		return
	}
	utils.Success(c, "Search results", gin.H{"patients": patients})
}
