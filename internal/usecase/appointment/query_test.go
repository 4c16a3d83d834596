package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/infra/repository/memory"
)

func TestList_ByDoctorAndPatient(t *testing.T) {
	f := newFixture()
	f.mustBook(t, "10:00")
	f.mustBook(t, "09:00")

	other := f.repo.AddPatient("Grace", "Hopper")
	_, err := NewBookAppointment(f.repo, nil, time.UTC).Execute(context.Background(), BookAppointmentInput{
		DoctorID: f.doctorID, PatientID: other.ID, Date: monday, Time: "11:00", Type: "online",
	})
	require.NoError(t, err)

	uc := NewListAppointments(f.repo)

	all, err := uc.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byDoctor, err := uc.ByDoctor(context.Background(), f.doctorID)
	require.NoError(t, err)
	require.Len(t, byDoctor, 3)
	assert.Equal(t, "09:00", byDoctor[0].Time)
	assert.Equal(t, "Gregory House", byDoctor[0].DoctorName)

	byPatient, err := uc.ByPatient(context.Background(), other.ID)
	require.NoError(t, err)
	require.Len(t, byPatient, 1)
	assert.Equal(t, "Grace Hopper", byPatient[0].PatientName)
	assert.Equal(t, monday, byPatient[0].Date)
}

func TestList_UnknownOwnerIsNotFound(t *testing.T) {
	f := newFixture()
	uc := NewListAppointments(f.repo)

	_, err := uc.ByDoctor(context.Background(), uuid.New())
	assert.True(t, httperr.IsBusiness(err, "doctor_not_found"))

	_, err = uc.ByPatient(context.Background(), uuid.New())
	assert.True(t, httperr.IsBusiness(err, "patient_not_found"))
}

func TestList_KnownDoctorWithoutAppointmentsIsEmpty(t *testing.T) {
	f := newFixture()

	out, err := NewListAppointments(f.repo).ByDoctor(context.Background(), f.doctorID)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestDelete_ThenFetchIsNotFound(t *testing.T) {
	f := newFixture()
	ap := f.mustBook(t, "09:00")

	del := NewDeleteAppointment(f.repo, nil)
	require.NoError(t, del.Execute(context.Background(), ap.ID, nil))

	_, err := NewListAppointments(f.repo).Get(context.Background(), ap.ID)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	err = del.Execute(context.Background(), ap.ID, nil)
	assert.Equal(t, httperr.KindNotFound, kindOf(t, err))
}

func TestCancelAndComplete_OnlyFromScheduled(t *testing.T) {
	f := newFixture()
	ap := f.mustBook(t, "09:00")

	done, err := NewCompleteAppointment(f.repo, nil, time.UTC).Execute(context.Background(), ap.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)
	require.NotNil(t, done.CompletedAt)

	_, err = NewCancelAppointment(f.repo, nil, time.UTC).Execute(context.Background(), ap.ID, nil)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = NewCancelAppointment(f.repo, nil, time.UTC).Execute(context.Background(), uuid.New(), nil)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestChecker_Polarity(t *testing.T) {
	f := newFixture()
	f.mustBook(t, "09:00")
	c := NewChecker(f.repo, time.UTC)
	ctx := context.Background()
	date, _ := domain.ParseDate(monday)

	ok, err := c.IsAvailable(ctx, f.doctorID, domain.Monday, domain.Clock(9*60), 30*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.IsAvailable(ctx, f.doctorID, domain.Sunday, domain.Clock(9*60), 30*time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	conflict, err := c.HasConflict(ctx, f.doctorID, domain.Slot{Date: date, Start: domain.Clock(9*60 + 15), Duration: 30 * time.Minute}, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, conflict)

	conflict, err = c.HasConflict(ctx, f.doctorID, domain.Slot{Date: date, Start: domain.Clock(9*60 + 30), Duration: 30 * time.Minute}, uuid.Nil)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestChecker_StoreErrorPropagates(t *testing.T) {
	f := newFixture()
	f.repo.FailOn = "ListAvailabilities"
	date, _ := domain.ParseDate(monday)

	err := NewChecker(f.repo, time.UTC).Verify(context.Background(), f.doctorID,
		domain.Slot{Date: date, Start: domain.Clock(9 * 60), Duration: 30 * time.Minute}, uuid.Nil)

	assert.ErrorIs(t, err, memory.ErrInjected)
}

func TestFreeSlots_SkipsBookedAndPastStarts(t *testing.T) {
	f := newFixture()
	f.mustBook(t, "09:30")
	date, _ := domain.ParseDate(monday)

	uc := NewGetFreeSlots(f.repo, time.UTC)
	uc.now = func() time.Time { return time.Date(2030, 1, 7, 10, 10, 0, 0, time.UTC) }

	slots, err := uc.Execute(context.Background(), domain.SlotsInput{
		DoctorID: f.doctorID,
		Date:     date,
		Duration: 30 * time.Minute,
	})
	require.NoError(t, err)

	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	assert.Equal(t, []string{"10:30", "11:00", "11:30"}, starts)
	assert.Equal(t, "12:00", slots[len(slots)-1].End)
}

func TestFreeSlots_PastDateIsEmpty(t *testing.T) {
	f := newFixture()
	date, _ := domain.ParseDate(monday)

	uc := NewGetFreeSlots(f.repo, time.UTC)
	uc.now = func() time.Time { return time.Date(2030, 1, 8, 8, 0, 0, 0, time.UTC) }

	slots, err := uc.Execute(context.Background(), domain.SlotsInput{DoctorID: f.doctorID, Date: date})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestFreeSlots_UnknownDoctor(t *testing.T) {
	f := newFixture()

	_, err := NewGetFreeSlots(f.repo, time.UTC).Execute(context.Background(), domain.SlotsInput{DoctorID: uuid.New()})
	assert.True(t, httperr.IsBusiness(err, "doctor_not_found"))
}
