package routes

import (
	"time"

	"hospital-app-server/internal/cache"
	"hospital-app-server/internal/config"
	"hospital-app-server/internal/handlers"
	"hospital-app-server/internal/middleware"
	"hospital-app-server/internal/models"
	"hospital-app-server/internal/scheduling"
	"hospital-app-server/internal/tasks"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, scheduler *scheduling.Service, cacheClient *cache.Client, queue *tasks.Queue, logger *zap.Logger) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg, logger)
	adminHandler := handlers.NewAdminHandler(db, cacheClient, logger)
	doctorHandler := handlers.NewDoctorHandler(db, scheduler, logger)
	patientHandler := handlers.NewPatientHandler(db, scheduler, queue, logger)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh", authHandler.Refresh)
		}
	}

	// Authenticated routes
	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(cfg, db))
	{
		private.GET("/auth/me", authHandler.Me)

		// Admin surface
		admin := private.Group("/admin")
		admin.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			admin.GET("/dashboard", adminHandler.Dashboard)

			admin.GET("/departments", adminHandler.GetDepartments)
			admin.POST("/departments", adminHandler.CreateDepartment)
			admin.PUT("/departments/:id", adminHandler.UpdateDepartment)
			admin.DELETE("/departments/:id", adminHandler.DeleteDepartment)

			admin.GET("/doctors", adminHandler.GetDoctors)
			admin.POST("/doctors", adminHandler.CreateDoctor)
			admin.GET("/doctors/search", adminHandler.SearchDoctors)
			admin.GET("/doctors/:id", adminHandler.GetDoctor)
			admin.PUT("/doctors/:id", adminHandler.UpdateDoctor)
			admin.DELETE("/doctors/:id", adminHandler.DeleteDoctor)

			admin.GET("/patients", adminHandler.GetPatients)
			admin.GET("/patients/search", adminHandler.SearchPatients)
			admin.GET("/patients/:id", adminHandler.GetPatient)
			admin.PUT("/patients/:id", adminHandler.UpdatePatient)
			admin.POST("/patients/:id/blacklist", adminHandler.BlacklistPatient)

			admin.GET("/appointments", adminHandler.GetAppointments)
		}

		// Doctor surface
		doctor := private.Group("/doctor")
		doctor.Use(middleware.RoleAuthMiddleware(models.RoleDoctor))
		{
			doctor.GET("/dashboard", doctorHandler.Dashboard)

			doctor.GET("/appointments", doctorHandler.GetAppointments)
			doctor.GET("/appointments/:id", doctorHandler.GetAppointment)
			doctor.POST("/appointments/:id/complete", doctorHandler.CompleteAppointment)
			doctor.POST("/appointments/:id/cancel", doctorHandler.CancelAppointment)

			doctor.GET("/patients", doctorHandler.GetPatients)
			doctor.GET("/patients/:id/history", doctorHandler.GetPatientHistory)
			doctor.POST("/patients/:id/treatments", doctorHandler.RecordTreatment)

			doctor.GET("/availability", doctorHandler.GetAvailability)
			doctor.POST("/availability", doctorHandler.DeclareAvailability)
			doctor.DELETE("/availability/:id", doctorHandler.RevokeAvailability)

			doctor.GET("/profile", doctorHandler.GetProfile)
			doctor.PUT("/profile", doctorHandler.UpdateProfile)
		}

		// Patient surface. Read-heavy catalogue endpoints go through the
		// response cache; mutations invalidate the matching prefixes.
		patient := private.Group("/patient")
		patient.Use(middleware.RoleAuthMiddleware(models.RolePatient))
		{
			patient.GET("/dashboard", patientHandler.Dashboard)

			patient.GET("/departments", cache.Page(cacheClient, "departments", 600*time.Second), patientHandler.GetDepartments)
			patient.GET("/departments/:id/doctors", cache.Page(cacheClient, "doctors", cacheTTL), patientHandler.GetDepartmentDoctors)
			patient.GET("/doctors", cache.Page(cacheClient, "doctors", cacheTTL), patientHandler.GetDoctors)
			patient.GET("/doctors/:id", cache.Page(cacheClient, "doctors", cacheTTL), patientHandler.GetDoctor)

			patient.GET("/appointments", patientHandler.GetAppointments)
			patient.POST("/appointments", patientHandler.BookAppointment)
			patient.GET("/appointments/:id", patientHandler.GetAppointment)
			patient.PUT("/appointments/:id/reschedule", patientHandler.RescheduleAppointment)
			patient.POST("/appointments/:id/cancel", patientHandler.CancelAppointment)

			patient.GET("/treatments", patientHandler.GetTreatments)
			patient.GET("/treatments/:id", patientHandler.GetTreatment)
			patient.POST("/export/treatments", patientHandler.ExportTreatments)
			patient.GET("/export/status/:taskId", patientHandler.ExportStatus)

			patient.GET("/profile", patientHandler.GetProfile)
			patient.PUT("/profile", patientHandler.UpdateProfile)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
