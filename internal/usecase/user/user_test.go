package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/infra/repository/memory"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

func seed(t *testing.T) (*memory.AppointmentRepository, models.Doctor, models.Patient, models.User) {
	t.Helper()

	repo := memory.NewAppointmentRepository()
	d := repo.AddDoctor("Gregory", "House")
	p := repo.AddPatient("Ada", "Lovelace")
	admin := repo.AddUser(models.User{FirstName: "Root", Email: "root@clinic.example", Role: models.RoleAdmin})
	repo.AddWindow(d.ID, "monday", "09:00", "12:00")

	require.NoError(t, repo.CreateAppointment(context.Background(), &models.Appointment{
		ID: uuid.New(), DoctorID: d.ID, PatientID: p.ID, Status: string(appointment.StatusScheduled),
	}))
	return repo, d, p, admin
}

func TestListUsers_FiltersByRole(t *testing.T) {
	repo, _, _, _ := seed(t)
	uc := NewListUsers(repo)

	all, err := uc.Execute(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	doctors, err := uc.Execute(context.Background(), models.RoleDoctor)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Gregory", doctors[0].FirstName)

	_, err = uc.Execute(context.Background(), "superuser")
	assert.True(t, httperr.IsBusiness(err, "invalid_role"))
}

func TestListUsers_StoreFailure(t *testing.T) {
	repo, _, _, _ := seed(t)
	repo.FailOn = "ListUsers"

	_, err := NewListUsers(repo).Execute(context.Background(), "")
	assert.ErrorIs(t, err, memory.ErrInjected)
}

func TestGetProfile(t *testing.T) {
	repo, d, p, admin := seed(t)
	uc := NewGetProfile(repo)

	doc, err := uc.Execute(context.Background(), d.UserID)
	require.NoError(t, err)
	require.NotNil(t, doc.Doctor)
	assert.Nil(t, doc.Patient)
	assert.Len(t, doc.Doctor.Availabilities, 1)

	pat, err := uc.Execute(context.Background(), p.UserID)
	require.NoError(t, err)
	require.NotNil(t, pat.Patient)
	assert.Equal(t, p.ID, pat.Patient.ID)

	adm, err := uc.Execute(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Nil(t, adm.Doctor)
	assert.Nil(t, adm.Patient)

	_, err = uc.Execute(context.Background(), uuid.New())
	assert.True(t, httperr.IsBusiness(err, "user_not_found"))
}

func TestDeleteUser_CascadesToProfileAndAppointments(t *testing.T) {
	repo, d, p, admin := seed(t)
	ctx := context.Background()

	require.NoError(t, NewDeleteUser(repo, nil).Execute(ctx, d.UserID, &admin.ID))

	_, err := repo.GetDoctor(ctx, d.ID)
	assert.ErrorIs(t, err, appointment.ErrNotFound)

	rows, err := repo.ListAvailabilities(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	apps, err := repo.ListAppointments(ctx, appointment.AppointmentFilter{PatientID: &p.ID})
	require.NoError(t, err)
	assert.Empty(t, apps)

	// the patient on the other side of the appointment stays
	_, err = repo.GetPatient(ctx, p.ID)
	assert.NoError(t, err)

	_, err = NewGetProfile(repo).Execute(ctx, d.UserID)
	assert.True(t, httperr.IsBusiness(err, "user_not_found"))
}

func TestDeleteUser_Rules(t *testing.T) {
	repo, _, p, admin := seed(t)
	uc := NewDeleteUser(repo, nil)
	ctx := context.Background()

	err := uc.Execute(ctx, admin.ID, &admin.ID)
	assert.True(t, httperr.IsBusiness(err, "cannot_delete_self"))

	err = uc.Execute(ctx, uuid.New(), &admin.ID)
	assert.True(t, httperr.IsBusiness(err, "user_not_found"))

	repo.FailOn = "DeleteUser"
	err = uc.Execute(ctx, p.UserID, &admin.ID)
	assert.ErrorIs(t, err, memory.ErrInjected)
}
