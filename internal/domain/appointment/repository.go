package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

var ErrNotFound = errors.New("record not found")

type AppointmentFilter struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
}

type Repository interface {
	// -------- Directory --------
	GetDoctor(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Doctor, error)

	GetPatient(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Patient, error)

	// -------- Availability --------
	ListAvailabilities(
		ctx context.Context,
		doctorID uuid.UUID,
	) ([]models.Availability, error)

	// -------- Appointment (create / conflict) --------

	// LockDoctorDay serializes writers of one doctor's day until the
	// surrounding transaction ends.
	LockDoctorDay(
		ctx context.Context,
		doctorID uuid.UUID,
		date time.Time,
	) error

	// HasTimeConflict reports a non-cancelled appointment of the doctor on
	// date overlapping [start, end). excludeID is ignored when uuid.Nil.
	HasTimeConflict(
		ctx context.Context,
		doctorID uuid.UUID,
		date time.Time,
		start time.Time,
		end time.Time,
		excludeID uuid.UUID,
	) (bool, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (read / change) --------
	GetAppointment(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uuid.UUID,
	) error

	ListAppointments(
		ctx context.Context,
		filter AppointmentFilter,
	) ([]models.Appointment, error)

	ListAppointmentsForDay(
		ctx context.Context,
		doctorID uuid.UUID,
		date time.Time,
	) ([]models.Appointment, error)

	// Transaction runs fn against a repository bound to one transaction.
	Transaction(
		ctx context.Context,
		fn func(repo Repository) error,
	) error
}
