package models

import (
	"time"

	"github.com/google/uuid"
)

// Availability is a recurring weekly window in which a doctor takes appointments.
type Availability struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	DoctorID uuid.UUID `gorm:"type:uuid;index;not null" json:"doctor_id"`

	Day       string `gorm:"size:10;not null" json:"day"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
