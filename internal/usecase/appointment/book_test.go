package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/audit"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/infra/repository/memory"
)

// 2030-01-07 is a Monday.
const monday = "2030-01-07"

type fixture struct {
	repo      *memory.AppointmentRepository
	doctorID  uuid.UUID
	patientID uuid.UUID
}

func newFixture() fixture {
	repo := memory.NewAppointmentRepository()
	d := repo.AddDoctor("Gregory", "House")
	p := repo.AddPatient("Ada", "Lovelace")
	repo.AddWindow(d.ID, "monday", "09:00", "12:00")
	return fixture{repo: repo, doctorID: d.ID, patientID: p.ID}
}

func (f fixture) book(t *testing.T, date, clock, dur string) error {
	t.Helper()
	_, err := NewBookAppointment(f.repo, nil, time.UTC).Execute(context.Background(), BookAppointmentInput{
		DoctorID:  f.doctorID,
		PatientID: f.patientID,
		Date:      date,
		Time:      clock,
		Duration:  dur,
		Type:      "online",
	})
	return err
}

func kindOf(t *testing.T, err error) httperr.Kind {
	t.Helper()
	be, ok := httperr.As(err)
	require.True(t, ok, "expected business error, got %v", err)
	return be.Kind
}

func TestBook_NonOverlappingBookingsSucceed(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.book(t, monday, "09:00", "30m"))
	require.NoError(t, f.book(t, monday, "10:00", "30m"))

	assert.Equal(t, 2, f.repo.Creates())
}

func TestBook_StoresScheduledAppointmentWithDisplayData(t *testing.T) {
	f := newFixture()
	uc := NewBookAppointment(f.repo, nil, time.UTC)
	fixed := time.Date(2029, 12, 1, 8, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	ap, err := uc.Execute(context.Background(), BookAppointmentInput{
		DoctorID:  f.doctorID,
		PatientID: f.patientID,
		Date:      monday,
		Time:      "09:00",
		Type:      "in-person",
	})
	require.NoError(t, err)

	assert.Equal(t, "scheduled", ap.Status)
	assert.Equal(t, "in_person", ap.Type)
	assert.Equal(t, 30, ap.DurationMin)
	assert.Equal(t, fixed, ap.CreatedAt)
	assert.Equal(t, fixed, ap.UpdatedAt)
	assert.Equal(t, time.Date(2030, 1, 7, 9, 30, 0, 0, time.UTC), ap.EndsAt)
	assert.Equal(t, "Gregory House", ap.Doctor.User.FullName())
	assert.Equal(t, "Ada Lovelace", ap.Patient.User.FullName())
}

func TestBook_OverlapIsConflict(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.book(t, monday, "09:00", "60m"))

	err := f.book(t, monday, "09:30", "30m")

	assert.Equal(t, httperr.KindConflict, kindOf(t, err))
	assert.Equal(t, 1, f.repo.Creates())
}

func TestBook_TouchingIntervalsDoNotConflict(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.book(t, monday, "09:00", "30m"))

	assert.NoError(t, f.book(t, monday, "09:30", "30m"))
}

func TestBook_CancelledAppointmentFreesSlot(t *testing.T) {
	f := newFixture()
	ap, err := NewBookAppointment(f.repo, nil, time.UTC).Execute(context.Background(), BookAppointmentInput{
		DoctorID: f.doctorID, PatientID: f.patientID, Date: monday, Time: "09:00", Type: "online",
	})
	require.NoError(t, err)

	_, err = NewCancelAppointment(f.repo, nil, time.UTC).Execute(context.Background(), ap.ID, nil)
	require.NoError(t, err)

	assert.NoError(t, f.book(t, monday, "09:00", "30m"))
}

func TestBook_OutsideWindowsIsUnavailable(t *testing.T) {
	cases := []struct {
		name, date, clock, dur string
	}{
		{"before window", monday, "08:30", "30m"},
		{"spills past window end", monday, "11:45", "30m"},
		{"other weekday", "2030-01-08", "09:00", "30m"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			err := f.book(t, tc.date, tc.clock, tc.dur)
			assert.Equal(t, httperr.KindUnavailable, kindOf(t, err))
			assert.Zero(t, f.repo.Creates())
		})
	}
}

func TestBook_WindowEndIsInclusiveForSlotEnd(t *testing.T) {
	f := newFixture()
	assert.NoError(t, f.book(t, monday, "11:30", "30m"))
}

func TestBook_UnavailableWinsOverConflict(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.book(t, monday, "11:30", "30m"))

	err := f.book(t, monday, "11:45", "30m")
	assert.Equal(t, httperr.KindUnavailable, kindOf(t, err))
}

func TestBook_UnknownDoctorOrPatient(t *testing.T) {
	f := newFixture()
	uc := NewBookAppointment(f.repo, nil, time.UTC)

	_, err := uc.Execute(context.Background(), BookAppointmentInput{
		DoctorID: uuid.New(), PatientID: uuid.New(), Date: monday, Time: "09:00", Type: "online",
	})
	assert.True(t, httperr.IsBusiness(err, "doctor_not_found"))

	_, err = uc.Execute(context.Background(), BookAppointmentInput{
		DoctorID: f.doctorID, PatientID: uuid.New(), Date: monday, Time: "09:00", Type: "online",
	})
	assert.True(t, httperr.IsBusiness(err, "patient_not_found"))

	assert.Zero(t, f.repo.Creates())
}

func TestBook_InvalidInputIsValidationError(t *testing.T) {
	cases := []struct {
		name string
		in   BookAppointmentInput
		code string
	}{
		{"bad date", BookAppointmentInput{Date: "07/01/2030", Time: "09:00", Type: "online"}, "invalid_date"},
		{"bad time", BookAppointmentInput{Date: monday, Time: "9am", Type: "online"}, "invalid_time"},
		{"bad duration", BookAppointmentInput{Date: monday, Time: "09:00", Duration: "-5m", Type: "online"}, "invalid_duration"},
		{"bad type", BookAppointmentInput{Date: monday, Time: "09:00", Type: "house_call"}, "invalid_appointment_type"},
		{"past midnight", BookAppointmentInput{Date: monday, Time: "23:45", Duration: "30m", Type: "online"}, "invalid_time"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			tc.in.DoctorID, tc.in.PatientID = f.doctorID, f.patientID

			_, err := NewBookAppointment(f.repo, nil, time.UTC).Execute(context.Background(), tc.in)

			assert.Equal(t, httperr.KindValidation, kindOf(t, err))
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
		})
	}
}

func TestBook_StoreFailureIsNotBusiness(t *testing.T) {
	f := newFixture()
	f.repo.FailOn = "CreateAppointment"

	err := f.book(t, monday, "09:00", "30m")

	require.Error(t, err)
	assert.ErrorIs(t, err, memory.ErrInjected)
	_, ok := httperr.As(err)
	assert.False(t, ok)
}

func TestBook_ConcurrentSameSlotExactlyOneWins(t *testing.T) {
	f := newFixture()

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.book(t, monday, "10:00", "30m")
		}(i)
	}
	wg.Wait()

	ok, conflicts := 0, 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		if httperr.IsBusiness(err, "time_conflict") {
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
	assert.Equal(t, 1, f.repo.Creates())
}

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordingSink) Log(ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func TestBook_AuditsCreationAndConflict(t *testing.T) {
	f := newFixture()
	sink := &recordingSink{}
	d := audit.NewDispatcher(sink, zap.NewNop())
	uc := NewBookAppointment(f.repo, d, time.UTC)

	in := BookAppointmentInput{
		DoctorID: f.doctorID, PatientID: f.patientID, Date: monday, Time: "09:00", Type: "online",
	}
	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), in)
	require.Error(t, err)

	d.Close()

	require.Len(t, sink.events, 2)
	assert.Equal(t, "appointment_created", sink.events[0].Action)
	assert.Equal(t, "appointment_conflict", sink.events[1].Action)
	assert.Equal(t, f.doctorID.String(), sink.events[1].EntityID)
}
