package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	userDomain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

// The user methods share state with the appointment store so a delete
// cascades over the same doctors, patients and appointments. Payments live
// in PaymentRepository and are not touched here.

func (r *AppointmentRepository) ListUsers(_ context.Context, role string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("ListUsers"); err != nil {
		return nil, err
	}

	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *AppointmentRepository) GetProfile(_ context.Context, userID uuid.UUID) (*userDomain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, userDomain.ErrNotFound
	}

	p := &userDomain.Profile{User: u}
	for _, d := range r.doctors {
		if d.UserID == userID {
			d := d
			d.Availabilities = append([]models.Availability(nil), r.windows[d.ID]...)
			p.Doctor = &d
		}
	}
	for _, pt := range r.patients {
		if pt.UserID == userID {
			pt := pt
			p.Patient = &pt
		}
	}
	return p, nil
}

func (r *AppointmentRepository) DeleteUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("DeleteUser"); err != nil {
		return err
	}

	if _, ok := r.users[userID]; !ok {
		return userDomain.ErrNotFound
	}

	owned := map[uuid.UUID]bool{}
	for id, d := range r.doctors {
		if d.UserID == userID {
			owned[id] = true
			delete(r.doctors, id)
			delete(r.windows, id)
		}
	}
	for id, p := range r.patients {
		if p.UserID == userID {
			owned[id] = true
			delete(r.patients, id)
		}
	}
	for id, ap := range r.apps {
		if owned[ap.DoctorID] || owned[ap.PatientID] {
			delete(r.apps, id)
		}
	}
	delete(r.users, userID)
	return nil
}

var _ userDomain.Repository = (*AppointmentRepository)(nil)
