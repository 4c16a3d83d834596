package doctor

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

// ErrNotFound is shared with the appointment store so one repository can
// serve both.
var ErrNotFound = appointment.ErrNotFound

type Repository interface {
	GetDoctor(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Doctor, error)

	SetAvatarURL(
		ctx context.Context,
		id uuid.UUID,
		url string,
	) error

	ListAvailabilities(
		ctx context.Context,
		doctorID uuid.UUID,
	) ([]models.Availability, error)

	// ReplaceAvailabilities swaps every window of the doctor atomically.
	ReplaceAvailabilities(
		ctx context.Context,
		doctorID uuid.UUID,
		rows []models.Availability,
	) error
}

// ObjectStore keeps public binary objects, e.g. avatars.
type ObjectStore interface {
	Put(
		ctx context.Context,
		key string,
		body []byte,
		contentType string,
	) (string, error)
}
