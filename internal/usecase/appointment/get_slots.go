package appointment

import (
	"context"
	"fmt"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/timezone"
)

// GetFreeSlots lists the bookable starts of a doctor on one date.
type GetFreeSlots struct {
	repo domain.Repository
	loc  *time.Location
	now  func() time.Time
}

func NewGetFreeSlots(repo domain.Repository, loc *time.Location) *GetFreeSlots {
	return &GetFreeSlots{
		repo: repo,
		loc:  loc,
		now:  func() time.Time { return time.Now().In(loc) },
	}
}

func (uc *GetFreeSlots) Execute(
	ctx context.Context,
	in domain.SlotsInput,
) ([]domain.TimeSlot, error) {

	if in.Duration <= 0 {
		in.Duration = domain.DefaultDuration
	}

	doctor, err := findDoctor(ctx, uc.repo, in.DoctorID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if in.Date.Before(timezone.Today(now, uc.loc)) {
		return []domain.TimeSlot{}, nil
	}

	rows, err := uc.repo.ListAvailabilities(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}

	booked, err := uc.repo.ListAppointmentsForDay(ctx, doctor.ID, in.Date)
	if err != nil {
		return nil, fmt.Errorf("list appointments for day: %w", err)
	}

	day := domain.DayOf(in.Date)

	slots := make([]domain.TimeSlot, 0)
	seen := map[domain.Clock]bool{}
	for _, row := range rows {
		w, ok := domain.ParseWindow(row)
		if !ok || w.Day != day {
			continue
		}

		for start := w.Start; w.Contains(start, in.Duration); start = start.Add(in.Duration) {
			slot := domain.Slot{Date: in.Date, Start: start, Duration: in.Duration}
			from, to := slot.Bounds(uc.loc)

			if seen[start] || from.Before(now) {
				continue
			}

			taken := false
			for _, ap := range booked {
				if domain.Overlaps(from, to, ap.StartsAt, ap.EndsAt) {
					taken = true
					break
				}
			}
			if taken {
				continue
			}

			seen[start] = true
			slots = append(slots, domain.TimeSlot{
				Start: start.String(),
				End:   slot.End().String(),
			})
		}
	}

	// windows overlap or arrive out of order; HH:MM sorts lexically
	sort.Slice(slots, func(i, j int) bool { return slots[i].Start < slots[j].Start })

	return slots, nil
}
