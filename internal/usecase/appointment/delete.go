package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	appointmentID uuid.UUID,
	actorID *uuid.UUID,
) error {

	err := uc.repo.DeleteAppointment(ctx, appointmentID)
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrNotFound("appointment")
	}
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: appointmentID.String(),
	})

	return nil
}
