package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/audit"
	appointment "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

type WindowInput struct {
	Day       string
	StartTime string
	EndTime   string
}

// ======================================================
// LIST
// ======================================================

type ListAvailabilities struct {
	repo domain.Repository
}

func NewListAvailabilities(repo domain.Repository) *ListAvailabilities {
	return &ListAvailabilities{repo: repo}
}

func (uc *ListAvailabilities) Execute(
	ctx context.Context,
	doctorID uuid.UUID,
) ([]models.Availability, error) {

	if _, err := findDoctor(ctx, uc.repo, doctorID); err != nil {
		return nil, err
	}

	rows, err := uc.repo.ListAvailabilities(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("list availabilities: %w", err)
	}
	return rows, nil
}

// ======================================================
// REPLACE
// ======================================================

// ReplaceAvailabilities swaps the doctor's weekly schedule. Booked
// appointments are left untouched.
type ReplaceAvailabilities struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReplaceAvailabilities(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ReplaceAvailabilities {
	return &ReplaceAvailabilities{repo: repo, audit: audit}
}

func (uc *ReplaceAvailabilities) Execute(
	ctx context.Context,
	doctorID uuid.UUID,
	windows []WindowInput,
	actorID *uuid.UUID,
) ([]models.Availability, error) {

	rows := make([]models.Availability, 0, len(windows))
	for _, w := range windows {
		row, err := parseWindow(doctorID, w)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if _, err := findDoctor(ctx, uc.repo, doctorID); err != nil {
		return nil, err
	}

	if err := uc.repo.ReplaceAvailabilities(ctx, doctorID, rows); err != nil {
		return nil, fmt.Errorf("replace availabilities: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "availability_updated",
		Entity:   "doctor",
		EntityID: doctorID.String(),
		Metadata: map[string]any{"windows": len(rows)},
	})

	return rows, nil
}

func parseWindow(doctorID uuid.UUID, w WindowInput) (models.Availability, error) {
	day, err := appointment.ParseDay(w.Day)
	if err != nil {
		return models.Availability{}, err
	}
	start, err := appointment.ParseClock(w.StartTime)
	if err != nil {
		return models.Availability{}, err
	}
	end, err := appointment.ParseClock(w.EndTime)
	if err != nil {
		return models.Availability{}, err
	}
	if start >= end {
		return models.Availability{}, httperr.ErrValidation("invalid_window")
	}

	return models.Availability{
		DoctorID:  doctorID,
		Day:       string(day),
		StartTime: start.String(),
		EndTime:   end.String(),
	}, nil
}

func findDoctor(ctx context.Context, repo domain.Repository, id uuid.UUID) (*models.Doctor, error) {
	d, err := repo.GetDoctor(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("doctor")
	}
	if err != nil {
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return d, nil
}

// ======================================================
// PROFILE
// ======================================================

type GetDoctor struct {
	repo domain.Repository
}

func NewGetDoctor(repo domain.Repository) *GetDoctor {
	return &GetDoctor{repo: repo}
}

func (uc *GetDoctor) Execute(ctx context.Context, doctorID uuid.UUID) (*models.Doctor, error) {
	return findDoctor(ctx, uc.repo, doctorID)
}
