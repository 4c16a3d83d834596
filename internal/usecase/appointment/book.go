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

type BookAppointmentInput struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID

	Date     string
	Time     string
	Duration string
	Type     string

	ActorID *uuid.UUID
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
	now   func() time.Time
}

func NewBookAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *BookAppointment {
	return &BookAppointment{
		repo:  repo,
		audit: audit,
		loc:   loc,
		now:   func() time.Time { return time.Now().In(loc) },
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Input
	// --------------------------------------------------
	slot, apType, err := parseBooking(in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Doctor, then patient
	// --------------------------------------------------
	doctor, err := findDoctor(ctx, uc.repo, in.DoctorID)
	if err != nil {
		return nil, err
	}

	patient, err := findPatient(ctx, uc.repo, in.PatientID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Availability + conflict + insert, serialized per doctor/day
	// --------------------------------------------------
	now := uc.now()
	ap := &models.Appointment{
		ID:        uuid.New(),
		DoctorID:  doctor.ID,
		PatientID: patient.ID,
		Type:      string(apType),
		Status:    string(domain.InitialStatus()),
		CreatedAt: now,
		UpdatedAt: now,
	}
	domain.Place(ap, slot, uc.loc)

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.LockDoctorDay(ctx, doctor.ID, slot.Date); err != nil {
			return fmt.Errorf("lock doctor day: %w", err)
		}

		if err := NewChecker(tx, uc.loc).Verify(ctx, doctor.ID, slot, uuid.Nil); err != nil {
			return err
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			if httperr.IsExclusionConflict(err) {
				return httperr.ErrConflict()
			}
			return fmt.Errorf("create appointment: %w", err)
		}
		return nil
	})

	if err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			uc.audit.Dispatch(audit.Event{
				ActorID:  in.ActorID,
				Action:   "appointment_conflict",
				Entity:   "doctor",
				EntityID: doctor.ID.String(),
				Metadata: map[string]any{
					"date":     slot.Date.Format(domain.DateLayout),
					"time":     slot.Start.String(),
					"duration": slot.Duration.String(),
				},
			})
		}
		return nil, err
	}

	ap.Doctor = *doctor
	ap.Patient = *patient

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID.String(),
	})

	return ap, nil
}

func parseBooking(in BookAppointmentInput) (domain.Slot, domain.Type, error) {
	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return domain.Slot{}, "", err
	}

	start, err := domain.ParseClock(in.Time)
	if err != nil {
		return domain.Slot{}, "", err
	}

	dur, err := domain.ParseDuration(in.Duration)
	if err != nil {
		return domain.Slot{}, "", err
	}

	apType, err := domain.ParseType(in.Type)
	if err != nil {
		return domain.Slot{}, "", err
	}

	slot := domain.Slot{Date: date, Start: start, Duration: dur}
	if err := slot.Validate(); err != nil {
		return domain.Slot{}, "", err
	}

	return slot, apType, nil
}
