package tasks

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"hospital-app-server/internal/models"
	"hospital-app-server/internal/utils"
)

// TreatmentCSV renders a patient's appointment and treatment history as CSV.
// Column layout follows the export emailed to patients.
func TreatmentCSV(patient *models.Patient, appointments []models.Appointment) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"Appointment ID", "Patient ID", "Patient Name", "Doctor Name", "Department",
		"Appointment Date", "Appointment Time", "Status",
		"Diagnosis", "Prescription", "Notes", "Next Visit Date",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, apt := range appointments {
		diagnosis, prescription, notes, nextVisit := "N/A", "N/A", "N/A", "N/A"
		if tr := apt.Treatment; tr != nil {
			diagnosis = tr.Diagnosis
			if tr.Prescription != "" {
				prescription = tr.Prescription
			}
			if tr.TreatmentNotes != "" {
				notes = tr.TreatmentNotes
			}
			if tr.NextVisitDate != nil {
				nextVisit = utils.FormatDate(*tr.NextVisitDate)
			}
		}

		doctorName, departmentName := "", ""
		if apt.Doctor != nil {
			doctorName = apt.Doctor.FullName
			if apt.Doctor.Department != nil {
				departmentName = apt.Doctor.Department.Name
			}
		}

		row := []string{
			apt.ID,
			patient.ID,
			patient.FullName,
			doctorName,
			departmentName,
			utils.FormatDate(apt.AppointmentDate),
			apt.AppointmentTime,
			string(apt.Status),
			diagnosis,
			prescription,
			notes,
			nextVisit,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func reminderEmail(patientName, doctorName, departmentName, date, timeOfDay string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<h2>Appointment Reminder</h2>")
	fmt.Fprintf(&b, "<p>Dear %s,</p>", patientName)
	b.WriteString("<p>This is a reminder about your appointment scheduled for today.</p>")
	b.WriteString("<ul>")
	fmt.Fprintf(&b, "<li><strong>Doctor:</strong> %s</li>", doctorName)
	fmt.Fprintf(&b, "<li><strong>Department:</strong> %s</li>", departmentName)
	fmt.Fprintf(&b, "<li><strong>Date:</strong> %s</li>", date)
	fmt.Fprintf(&b, "<li><strong>Time:</strong> %s</li>", timeOfDay)
	b.WriteString("</ul>")
	b.WriteString("<p>Please arrive 10 minutes before your scheduled time.</p>")
	b.WriteString("<p>Hospital Management System - this is an automated message.</p>")
	b.WriteString("</body></html>")
	return b.String()
}

func monthlyReportEmail(doctorName, monthName string, appointments []models.Appointment) string {
	total := len(appointments)
	completed, cancelled := 0, 0
	for _, apt := range appointments {
		switch apt.Status {
		case models.StatusCompleted:
			completed++
		case models.StatusCancelled:
			cancelled++
		}
	}

	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<h2>Monthly Activity Report - %s</h2>", monthName)
	fmt.Fprintf(&b, "<p>Dear Dr. %s,</p>", doctorName)
	fmt.Fprintf(&b, "<p>Total: %d &middot; Completed: %d &middot; Cancelled: %d</p>", total, completed, cancelled)
	b.WriteString("<table border=\"1\"><tr><th>Date</th><th>Patient</th><th>Status</th><th>Diagnosis</th></tr>")
	for _, apt := range appointments {
		diagnosis := "N/A"
		if apt.Treatment != nil {
			diagnosis = apt.Treatment.Diagnosis
		}
		patientName := ""
		if apt.Patient != nil {
			patientName = apt.Patient.FullName
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			utils.FormatDate(apt.AppointmentDate), patientName, apt.Status, diagnosis)
	}
	b.WriteString("</table>")
	b.WriteString("<p>Hospital Management System - automated monthly report.</p>")
	b.WriteString("</body></html>")
	return b.String()
}

func exportEmail(patientName string, records int) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString("<h2>Treatment History Export</h2>")
	fmt.Fprintf(&b, "<p>Dear %s,</p>", patientName)
	b.WriteString("<p>Your treatment history export is ready. Please find the CSV attached.</p>")
	fmt.Fprintf(&b, "<p><strong>Total Records:</strong> %d</p>", records)
	b.WriteString("<p>Hospital Management System - this is an automated message.</p>")
	b.WriteString("</body></html>")
	return b.String()
}
