package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

// ErrInjected is returned by the operation named in AppointmentRepository.FailOn.
var ErrInjected = errors.New("memory: injected store failure")

// AppointmentRepository is an in-memory domain.Repository. Transaction runs fn
// against the same instance under a single mutex, which serializes writers
// the way the advisory lock does in Postgres. Nothing is rolled back.
type AppointmentRepository struct {
	mu   sync.Mutex
	txMu sync.Mutex

	users    map[uuid.UUID]models.User
	doctors  map[uuid.UUID]models.Doctor
	patients map[uuid.UUID]models.Patient
	windows  map[uuid.UUID][]models.Availability
	apps     map[uuid.UUID]models.Appointment

	creates int

	// FailOn names a method ("CreateAppointment", ...) that returns ErrInjected.
	FailOn string
}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{
		users:    map[uuid.UUID]models.User{},
		doctors:  map[uuid.UUID]models.Doctor{},
		patients: map[uuid.UUID]models.Patient{},
		windows:  map[uuid.UUID][]models.Availability{},
		apps:     map[uuid.UUID]models.Appointment{},
	}
}

func (r *AppointmentRepository) AddDoctor(first, last string) models.Doctor {
	user := models.User{
		ID: uuid.New(), FirstName: first, LastName: last,
		Email: first + "@clinic.example", Role: models.RoleDoctor,
	}
	d := models.Doctor{
		ID:             uuid.New(),
		UserID:         user.ID,
		Specialization: "cardiology",
		User:           user,
	}
	r.PutDoctor(d)
	return d
}

// PutDoctor stores d and its user, replacing any doctor with the same id.
func (r *AppointmentRepository) PutDoctor(d models.Doctor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doctors[d.ID] = d
	if d.User.ID != uuid.Nil {
		r.users[d.User.ID] = d.User
	}
}

// AddUser stores a user without a clinical profile, e.g. an admin.
func (r *AppointmentRepository) AddUser(u models.User) models.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return u
}

func (r *AppointmentRepository) AddPatient(first, last string) models.Patient {
	p := models.Patient{
		ID:   uuid.New(),
		User: models.User{
			ID: uuid.New(), FirstName: first, LastName: last,
			Email: first + "@example.com", Role: models.RolePatient,
		},
	}
	p.UserID = p.User.ID
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patients[p.ID] = p
	r.users[p.User.ID] = p.User
	return p
}

func (r *AppointmentRepository) AddWindow(doctorID uuid.UUID, day, start, end string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.windows[doctorID] = append(r.windows[doctorID], models.Availability{
		ID:        uint(len(r.windows[doctorID]) + 1),
		DoctorID:  doctorID,
		Day:       day,
		StartTime: start,
		EndTime:   end,
	})
}

// ClearWindows drops every availability window of the doctor.
func (r *AppointmentRepository) ClearWindows(doctorID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.windows, doctorID)
}

// Creates counts successful CreateAppointment calls.
func (r *AppointmentRepository) Creates() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.creates
}

func (r *AppointmentRepository) fail(op string) error {
	if r.FailOn == op {
		return ErrInjected
	}
	return nil
}

func (r *AppointmentRepository) GetDoctor(_ context.Context, id uuid.UUID) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("GetDoctor"); err != nil {
		return nil, err
	}
	d, ok := r.doctors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (r *AppointmentRepository) GetPatient(_ context.Context, id uuid.UUID) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.patients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *AppointmentRepository) ListAvailabilities(_ context.Context, doctorID uuid.UUID) ([]models.Availability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("ListAvailabilities"); err != nil {
		return nil, err
	}
	return append([]models.Availability(nil), r.windows[doctorID]...), nil
}

func (r *AppointmentRepository) LockDoctorDay(context.Context, uuid.UUID, time.Time) error {
	return nil
}

func (r *AppointmentRepository) HasTimeConflict(
	_ context.Context,
	doctorID uuid.UUID,
	date, start, end time.Time,
	excludeID uuid.UUID,
) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ap := range r.apps {
		if ap.DoctorID != doctorID || ap.ID == excludeID {
			continue
		}
		if ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if ap.Date.Format(domain.DateLayout) != date.Format(domain.DateLayout) {
			continue
		}
		if ap.StartsAt.Before(end) && ap.EndsAt.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *AppointmentRepository) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("CreateAppointment"); err != nil {
		return err
	}
	r.creates++
	stored := *ap
	stored.Doctor, stored.Patient = models.Doctor{}, models.Patient{}
	r.apps[ap.ID] = stored
	return nil
}

func (r *AppointmentRepository) GetAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	ap.Doctor = r.doctors[ap.DoctorID]
	ap.Patient = r.patients[ap.PatientID]
	return &ap, nil
}

func (r *AppointmentRepository) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("UpdateAppointment"); err != nil {
		return err
	}
	stored := *ap
	stored.Doctor, stored.Patient = models.Doctor{}, models.Patient{}
	r.apps[ap.ID] = stored
	return nil
}

func (r *AppointmentRepository) DeleteAppointment(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.apps, id)
	return nil
}

func (r *AppointmentRepository) ListAppointments(_ context.Context, f domain.AppointmentFilter) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("ListAppointments"); err != nil {
		return nil, err
	}
	out := []models.Appointment{}
	for _, ap := range r.apps {
		if f.DoctorID != nil && ap.DoctorID != *f.DoctorID {
			continue
		}
		if f.PatientID != nil && ap.PatientID != *f.PatientID {
			continue
		}
		ap.Doctor = r.doctors[ap.DoctorID]
		ap.Patient = r.patients[ap.PatientID]
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (r *AppointmentRepository) ListAppointmentsForDay(_ context.Context, doctorID uuid.UUID, date time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Appointment{}
	for _, ap := range r.apps {
		if ap.DoctorID != doctorID || ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if ap.Date.Format(domain.DateLayout) != date.Format(domain.DateLayout) {
			continue
		}
		out = append(out, ap)
	}
	return out, nil
}

func (r *AppointmentRepository) SetAvatarURL(_ context.Context, id uuid.UUID, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.AvatarURL = url
	r.doctors[id] = d
	return nil
}

func (r *AppointmentRepository) ReplaceAvailabilities(_ context.Context, doctorID uuid.UUID, rows []models.Availability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Availability, len(rows))
	for i, row := range rows {
		row.ID = uint(i + 1)
		row.DoctorID = doctorID
		out[i] = row
	}
	r.windows[doctorID] = out
	return nil
}

func (r *AppointmentRepository) Transaction(_ context.Context, fn func(domain.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(r)
}

var (
	_ domain.Repository = (*AppointmentRepository)(nil)
	_ doctor.Repository = (*AppointmentRepository)(nil)
)
