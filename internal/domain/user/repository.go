package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

var ErrNotFound = appointment.ErrNotFound

// Profile is a user with whichever clinical profile it owns.
type Profile struct {
	User    models.User     `json:"user"`
	Doctor  *models.Doctor  `json:"doctor,omitempty"`
	Patient *models.Patient `json:"patient,omitempty"`
}

type Repository interface {
	// ListUsers returns every user, or only those with role when it is set.
	ListUsers(ctx context.Context, role string) ([]models.User, error)

	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)

	// DeleteUser removes the user together with its doctor or patient
	// profile, that profile's availabilities, appointments and payments.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}
