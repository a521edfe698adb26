package tasks

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-app-server/internal/models"
)

func TestTreatmentCSV(t *testing.T) {
	patient := &models.Patient{FullName: "Jane Roe"}
	patient.ID = "pat-1"

	nextVisit := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	withTreatment := models.Appointment{
		AppointmentDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "10:30",
		Status:          models.StatusCompleted,
		Doctor: &models.Doctor{
			FullName:   "Gregory House",
			Department: &models.Department{Name: "Diagnostics"},
		},
		Treatment: &models.Treatment{
			Diagnosis:     "flu",
			Prescription:  "rest",
			NextVisitDate: &nextVisit,
		},
	}
	withTreatment.ID = "apt-1"

	bare := models.Appointment{
		AppointmentDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "09:00",
		Status:          models.StatusBooked,
	}
	bare.ID = "apt-2"

	data, err := TreatmentCSV(patient, []models.Appointment{withTreatment, bare})
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Appointment ID", rows[0][0])
	assert.Equal(t, "Next Visit Date", rows[0][11])

	assert.Equal(t, []string{
		"apt-1", "pat-1", "Jane Roe", "Gregory House", "Diagnostics",
		"2026-03-12", "10:30", "Completed",
		"flu", "rest", "N/A", "2026-04-01",
	}, rows[1])

	// Appointments without a treatment still export, with N/A placeholders.
	assert.Equal(t, "N/A", rows[2][8])
	assert.Equal(t, "Booked", rows[2][7])
}

func TestTreatmentCSVEmpty(t *testing.T) {
	patient := &models.Patient{FullName: "Jane Roe"}

	data, err := TreatmentCSV(patient, nil)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestReminderEmail(t *testing.T) {
	body := reminderEmail("Jane Roe", "Gregory House", "Diagnostics", "2026-03-12", "10:30")
	assert.Contains(t, body, "Jane Roe")
	assert.Contains(t, body, "Gregory House")
	assert.Contains(t, body, "2026-03-12")
	assert.Contains(t, body, "10:30")
}

func TestMonthlyReportEmail(t *testing.T) {
	appointments := []models.Appointment{
		{Status: models.StatusCompleted, Patient: &models.Patient{FullName: "A"},
			Treatment: &models.Treatment{Diagnosis: "flu"}},
		{Status: models.StatusCompleted, Patient: &models.Patient{FullName: "B"}},
		{Status: models.StatusCancelled, Patient: &models.Patient{FullName: "C"}},
	}

	body := monthlyReportEmail("House", "February 2026", appointments)
	assert.Contains(t, body, "February 2026")
	assert.Contains(t, body, "Total: 3")
	assert.Contains(t, body, "Completed: 2")
	assert.Contains(t, body, "Cancelled: 1")
	assert.Contains(t, body, "flu")
}

func TestNextDaily(t *testing.T) {
	beforeRun := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), nextDaily(beforeRun))

	afterRun := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC), nextDaily(afterRun))
}

func TestNextMonthly(t *testing.T) {
	beforeRun := time.Date(2026, 3, 1, 8, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), nextMonthly(beforeRun))

	afterRun := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC), nextMonthly(afterRun))

	december := time.Date(2026, 12, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2027, 1, 1, 9, 0, 0, 0, time.UTC), nextMonthly(december))
}
