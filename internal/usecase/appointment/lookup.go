package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

func findDoctor(ctx context.Context, repo domain.Repository, id uuid.UUID) (*models.Doctor, error) {
	doctor, err := repo.GetDoctor(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("doctor")
	}
	if err != nil {
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return doctor, nil
}

func findPatient(ctx context.Context, repo domain.Repository, id uuid.UUID) (*models.Patient, error) {
	patient, err := repo.GetPatient(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("patient")
	}
	if err != nil {
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return patient, nil
}

func findAppointment(ctx context.Context, repo domain.Repository, id uuid.UUID) (*models.Appointment, error) {
	ap, err := repo.GetAppointment(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("appointment")
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return ap, nil
}
