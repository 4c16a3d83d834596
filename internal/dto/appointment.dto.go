package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

type AppointmentDTO struct {
	ID uuid.UUID `json:"id"`

	DoctorID             uuid.UUID `json:"doctor_id"`
	DoctorName           string    `json:"doctor_name,omitempty"`
	DoctorSpecialization string    `json:"doctor_specialization,omitempty"`

	PatientID    uuid.UUID `json:"patient_id"`
	PatientName  string    `json:"patient_name,omitempty"`
	PatientEmail string    `json:"patient_email,omitempty"`

	Date        string `json:"date"`
	Time        string `json:"time"`
	DurationMin int    `json:"duration_min"`
	Type        string `json:"type"`
	Status      string `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewAppointmentDTO(ap models.Appointment) AppointmentDTO {
	out := AppointmentDTO{
		ID:          ap.ID,
		DoctorID:    ap.DoctorID,
		PatientID:   ap.PatientID,
		Date:        ap.Date.Format("2006-01-02"),
		Time:        ap.Time,
		DurationMin: ap.DurationMin,
		Type:        ap.Type,
		Status:      ap.Status,
		CreatedAt:   ap.CreatedAt,
		UpdatedAt:   ap.UpdatedAt,
	}

	// Doctor and Patient are only present when preloaded.
	if ap.Doctor.User.ID != uuid.Nil {
		out.DoctorName = ap.Doctor.User.FullName()
		out.DoctorSpecialization = ap.Doctor.Specialization
	}
	if ap.Patient.User.ID != uuid.Nil {
		out.PatientName = ap.Patient.User.FullName()
		out.PatientEmail = ap.Patient.User.Email
	}

	return out
}

func NewAppointmentDTOs(aps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, NewAppointmentDTO(ap))
	}
	return out
}
