package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hospital-app-server/internal/config"
	"hospital-app-server/internal/middleware"
	"hospital-app-server/internal/models"
	"hospital-app-server/internal/utils"
)

// AuthHandler handles registration, login and token refresh.
type AuthHandler struct {
	DB     *gorm.DB
	Config *config.Config
	Logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{DB: db, Config: cfg, Logger: logger}
}

// RegisterRequest represents the patient self-registration body.
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=80"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FullName    string `json:"fullName" binding:"required,max=150"`
	Phone       string `json:"phone"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"dateOfBirth"`
	BloodGroup  string `json:"bloodGroup"`
	Address     string `json:"address"`
}

// Register creates a patient account: the user and its patient profile are
// written in one transaction so a half-created account is never observable.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var count int64
	if err := h.DB.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if count > 0 {
		utils.Conflict(c, "Username already exists")
		return
	}
	if err := h.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if count > 0 {
		utils.Conflict(c, "Email already exists")
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     models.RolePatient,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password")
		return
	}

	patient := models.Patient{
		FullName:   req.FullName,
		Phone:      req.Phone,
		Gender:     req.Gender,
		BloodGroup: req.BloodGroup,
		Address:    req.Address,
	}
	if req.DateOfBirth != "" {
		dob, err := utils.ParseDate(req.DateOfBirth)
		if err != nil {
			utils.BadRequest(c, "Invalid dateOfBirth format, expected YYYY-MM-DD")
			return
		}
		patient.DateOfBirth = &dob
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		patient.UserID = user.ID
		return tx.Create(&patient).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "Username or email already exists")
			return
		}
		utils.InternalServerError(c, "Registration failed: "+err.Error())
		return
	}

	h.Logger.Info("patient registered", zap.String("user_id", user.ID))
	utils.Created(c, "Registration successful", gin.H{
		"user":    user,
		"patient": patient,
	})
}

// LoginRequest represents the login body.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates any role and issues access and refresh tokens.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.First(&user, "username = ?", req.Username).Error; err != nil {
		utils.Unauthorized(c, "Invalid username or password")
		return
	}
	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid username or password")
		return
	}
	if !user.IsActive {
		utils.Forbidden(c, "Account is inactive")
		return
	}
	if user.IsBlacklisted {
		utils.Forbidden(c, "Account is blacklisted")
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&user, h.Config)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate tokens")
		return
	}

	var profile interface{}
	switch user.Role {
	case models.RoleDoctor:
		var doctor models.Doctor
		if err := h.DB.First(&doctor, "user_id = ?", user.ID).Error; err == nil {
			profile = doctor
		}
	case models.RolePatient:
		var patient models.Patient
		if err := h.DB.First(&patient, "user_id = ?", user.ID).Error; err == nil {
			profile = patient
		}
	}

	utils.Success(c, "Login successful", gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user":         user,
		"profile":      profile,
	})
}

// RefreshRequest carries the refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Refresh issues a new access token from a valid refresh token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	claims, err := utils.ValidateToken(req.RefreshToken, h.Config.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token: "+err.Error())
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		utils.Unauthorized(c, "User not found")
		return
	}

	accessToken, _, err := utils.GenerateTokens(&user, h.Config)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token")
		return
	}

	utils.Success(c, "Token refreshed", gin.H{"accessToken": accessToken})
}

// Me returns the current authenticated user with its role profile.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	var profile interface{}
	switch user.Role {
	case models.RoleDoctor:
		var doctor models.Doctor
		if err := h.DB.First(&doctor, "user_id = ?", user.ID).Error; err == nil {
			profile = doctor
		}
	case models.RolePatient:
		var patient models.Patient
		if err := h.DB.First(&patient, "user_id = ?", user.ID).Error; err == nil {
			profile = patient
		}
	}

	utils.Success(c, "User fetched successfully", gin.H{
		"user":    user,
		"profile": profile,
	})
}
