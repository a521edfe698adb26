package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hospital-app-server/internal/models"
	"hospital-app-server/internal/utils"
)

// Job names registered with the queue.
const (
	JobDailyReminders   = "send_daily_reminders"
	JobMonthlyReports   = "send_monthly_reports"
	JobExportTreatments = "export_patient_treatments"
)

// ExportPayload identifies the patient whose treatment history is exported.
type ExportPayload struct {
	PatientID string `json:"patient_id"`
}

// Tasks implements the background job handlers: appointment reminders,
// monthly doctor reports and patient treatment exports.
type Tasks struct {
	db        *gorm.DB
	mailer    *Mailer
	logger    *zap.Logger
	exportDir string
}

// New creates the job handlers and registers them on the queue.
func New(db *gorm.DB, mailer *Mailer, logger *zap.Logger, exportDir string, q *Queue) *Tasks {
	t := &Tasks{db: db, mailer: mailer, logger: logger, exportDir: exportDir}
	q.Register(JobDailyReminders, t.HandleDailyReminders)
	q.Register(JobMonthlyReports, t.HandleMonthlyReports)
	q.Register(JobExportTreatments, t.HandleExportTreatments)
	return t
}

// HandleDailyReminders emails every patient holding a Booked appointment for
// today. Duplicate sends after a retry are tolerated.
func (t *Tasks) HandleDailyReminders(ctx context.Context, _ json.RawMessage) error {
	today := utils.Today()

	var appointments []models.Appointment
	err := t.db.
		Preload("Patient.User").
		Preload("Doctor.Department").
		Where("appointment_date = ? AND status = ?", today, models.StatusBooked).
		Find(&appointments).Error
	if err != nil {
		return fmt.Errorf("failed to load today's appointments: %w", err)
	}

	sent := 0
	for _, apt := range appointments {
		if apt.Patient == nil || apt.Patient.User == nil || apt.Doctor == nil {
			continue
		}
		email := apt.Patient.User.Email
		if email == "" {
			continue
		}

		departmentName := ""
		if apt.Doctor.Department != nil {
			departmentName = apt.Doctor.Department.Name
		}

		subject := fmt.Sprintf("Appointment Reminder - %s", utils.FormatDate(apt.AppointmentDate))
		body := reminderEmail(apt.Patient.FullName, apt.Doctor.FullName, departmentName,
			utils.FormatDate(apt.AppointmentDate), apt.AppointmentTime)

		if err := t.mailer.Send(email, subject, body, nil); err != nil {
			t.logger.Warn("reminder email failed",
				zap.String("appointment_id", apt.ID), zap.Error(err))
			continue
		}
		sent++
	}

	t.logger.Info("daily reminders sent", zap.Int("sent", sent), zap.Int("total", len(appointments)))
	return nil
}

// HandleMonthlyReports emails each available doctor an activity summary for
// the previous calendar month.
func (t *Tasks) HandleMonthlyReports(ctx context.Context, _ json.RawMessage) error {
	now := time.Now().UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastOfPrev := firstOfMonth.AddDate(0, 0, -1)
	firstOfPrev := time.Date(lastOfPrev.Year(), lastOfPrev.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthName := lastOfPrev.Format("January 2006")

	var doctors []models.Doctor
	if err := t.db.Preload("User").Where("is_available = ?", true).Find(&doctors).Error; err != nil {
		return fmt.Errorf("failed to load doctors: %w", err)
	}

	sent := 0
	for _, doctor := range doctors {
		var appointments []models.Appointment
		err := t.db.
			Preload("Patient").
			Preload("Treatment").
			Where("doctor_id = ? AND appointment_date BETWEEN ? AND ?", doctor.ID, firstOfPrev, lastOfPrev).
			Order("appointment_date asc").
			Find(&appointments).Error
		if err != nil {
			return fmt.Errorf("failed to load appointments for doctor %s: %w", doctor.ID, err)
		}
		if len(appointments) == 0 || doctor.User == nil || doctor.User.Email == "" {
			continue
		}

		subject := fmt.Sprintf("Monthly Activity Report - %s", monthName)
		body := monthlyReportEmail(doctor.FullName, monthName, appointments)

		if err := t.mailer.Send(doctor.User.Email, subject, body, nil); err != nil {
			t.logger.Warn("monthly report email failed",
				zap.String("doctor_id", doctor.ID), zap.Error(err))
			continue
		}
		sent++
	}

	t.logger.Info("monthly reports sent", zap.Int("sent", sent), zap.Int("doctors", len(doctors)))
	return nil
}

// HandleExportTreatments builds a CSV of the patient's full treatment
// history, emails it as an attachment and writes a copy under the export
// directory.
func (t *Tasks) HandleExportTreatments(ctx context.Context, payload json.RawMessage) error {
	var p ExportPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("invalid export payload: %w", err)
	}

	var patient models.Patient
	if err := t.db.Preload("User").First(&patient, "id = ?", p.PatientID).Error; err != nil {
		return fmt.Errorf("patient %s not found: %w", p.PatientID, err)
	}

	var appointments []models.Appointment
	err := t.db.
		Preload("Doctor.Department").
		Preload("Treatment").
		Where("patient_id = ?", patient.ID).
		Order("appointment_date desc").
		Find(&appointments).Error
	if err != nil {
		return fmt.Errorf("failed to load appointments: %w", err)
	}

	csvData, err := TreatmentCSV(&patient, appointments)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("treatment_history_%s_%s.csv", patient.ID, time.Now().UTC().Format("20060102_150405"))

	if err := os.MkdirAll(t.exportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(t.exportDir, filename), csvData, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	if patient.User != nil && patient.User.Email != "" {
		body := exportEmail(patient.FullName, len(appointments))
		attachment := &Attachment{Filename: filename, Content: csvData}
		if err := t.mailer.Send(patient.User.Email, "Treatment History Export", body, attachment); err != nil {
			t.logger.Warn("export email failed", zap.String("patient_id", patient.ID), zap.Error(err))
		}
	}

	t.logger.Info("treatment export completed",
		zap.String("patient_id", patient.ID), zap.Int("records", len(appointments)))
	return nil
}
