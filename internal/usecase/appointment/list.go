package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/dto"
)

// ListAppointments serves the read side: all, by doctor, by patient and by id.
type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) All(ctx context.Context) ([]dto.AppointmentDTO, error) {
	return uc.list(ctx, domain.AppointmentFilter{})
}

func (uc *ListAppointments) ByDoctor(
	ctx context.Context,
	doctorID uuid.UUID,
) ([]dto.AppointmentDTO, error) {

	if _, err := findDoctor(ctx, uc.repo, doctorID); err != nil {
		return nil, err
	}
	return uc.list(ctx, domain.AppointmentFilter{DoctorID: &doctorID})
}

func (uc *ListAppointments) ByPatient(
	ctx context.Context,
	patientID uuid.UUID,
) ([]dto.AppointmentDTO, error) {

	if _, err := findPatient(ctx, uc.repo, patientID); err != nil {
		return nil, err
	}
	return uc.list(ctx, domain.AppointmentFilter{PatientID: &patientID})
}

func (uc *ListAppointments) Get(
	ctx context.Context,
	appointmentID uuid.UUID,
) (dto.AppointmentDTO, error) {

	ap, err := findAppointment(ctx, uc.repo, appointmentID)
	if err != nil {
		return dto.AppointmentDTO{}, err
	}
	return dto.NewAppointmentDTO(*ap), nil
}

func (uc *ListAppointments) list(
	ctx context.Context,
	filter domain.AppointmentFilter,
) ([]dto.AppointmentDTO, error) {

	apps, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return dto.NewAppointmentDTOs(apps), nil
}
