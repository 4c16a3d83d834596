package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// EditAppointmentInput carries the fields to change; nil means keep.
type EditAppointmentInput struct {
	AppointmentID uuid.UUID

	DoctorID *uuid.UUID
	Date     *string
	Time     *string
	Type     *string

	ActorID *uuid.UUID
}

func (in EditAppointmentInput) empty() bool {
	return in.DoctorID == nil && in.Date == nil && in.Time == nil && in.Type == nil
}

// ======================================================
// USE CASE
// ======================================================

type EditAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
	now   func() time.Time
}

func NewEditAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *EditAppointment {
	return &EditAppointment{
		repo:  repo,
		audit: audit,
		loc:   loc,
		now:   func() time.Time { return time.Now().In(loc) },
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *EditAppointment) Execute(
	ctx context.Context,
	in EditAppointmentInput,
) (*models.Appointment, error) {

	if in.empty() {
		return nil, httperr.ErrValidation("no_fields_to_update")
	}

	// --------------------------------------------------
	// Parse the supplied fields before touching the store
	// --------------------------------------------------
	var (
		newDate  *time.Time
		newStart *domain.Clock
		newType  *domain.Type
	)
	if in.Date != nil {
		d, err := domain.ParseDate(*in.Date)
		if err != nil {
			return nil, err
		}
		newDate = &d
	}
	if in.Time != nil {
		c, err := domain.ParseClock(*in.Time)
		if err != nil {
			return nil, err
		}
		newStart = &c
	}
	if in.Type != nil {
		t, err := domain.ParseType(*in.Type)
		if err != nil {
			return nil, err
		}
		newType = &t
	}

	var updated *models.Appointment

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		ap, err := findAppointment(ctx, tx, in.AppointmentID)
		if err != nil {
			return err
		}
		if err := domain.CanEdit(domain.Status(ap.Status)); err != nil {
			return err
		}

		current, err := domain.SlotOf(ap)
		if err != nil {
			return err
		}

		// --------------------------------------------------
		// Merge
		// --------------------------------------------------
		doctorID := ap.DoctorID
		if in.DoctorID != nil {
			doctor, err := findDoctor(ctx, tx, *in.DoctorID)
			if err != nil {
				return err
			}
			doctorID = doctor.ID
		}

		target := current
		if newDate != nil {
			target.Date = *newDate
		}
		if newStart != nil {
			target.Start = *newStart
		}
		if err := target.Validate(); err != nil {
			return err
		}

		// --------------------------------------------------
		// Re-check only when the booking actually moves
		// --------------------------------------------------
		moved := doctorID != ap.DoctorID ||
			!target.Date.Equal(current.Date) ||
			target.Start != current.Start

		if moved {
			if err := tx.LockDoctorDay(ctx, doctorID, target.Date); err != nil {
				return fmt.Errorf("lock doctor day: %w", err)
			}
			if err := NewChecker(tx, uc.loc).Verify(ctx, doctorID, target, ap.ID); err != nil {
				return err
			}
		}

		// --------------------------------------------------
		// Apply
		// --------------------------------------------------
		ap.DoctorID = doctorID
		domain.Place(ap, target, uc.loc)
		if newType != nil {
			ap.Type = string(*newType)
		}
		ap.UpdatedAt = uc.now()

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			if httperr.IsExclusionConflict(err) {
				return httperr.ErrConflict()
			}
			return fmt.Errorf("update appointment: %w", err)
		}

		// reload so doctor display data follows a doctor change
		updated, err = findAppointment(ctx, tx, ap.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.ActorID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: updated.ID.String(),
	})

	return updated, nil
}
