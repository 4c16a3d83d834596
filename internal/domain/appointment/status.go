package appointment

import (
	"strings"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ===============================
// Appointment Type
// ===============================

type Type string

const (
	TypeOnline   Type = "online"
	TypeInPerson Type = "in_person"
)

// ParseType accepts the canonical values plus the common "in-person" spellings.
func ParseType(raw string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "online":
		return TypeOnline, nil
	case "in_person", "in-person", "inperson":
		return TypeInPerson, nil
	}
	return "", httperr.ErrValidation("invalid_appointment_type")
}

// ===============================
// Validations
// ===============================

func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanEdit allows moving or retyping only while the appointment is still
// scheduled. Cancelled and completed rows are history.
func CanEdit(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
