package appointment

import (
	"time"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	ap.UpdatedAt = now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	ap.UpdatedAt = now
	return nil
}

// Place sets the date, start and duration of ap and recomputes its absolute bounds.
func Place(ap *models.Appointment, slot Slot, loc *time.Location) {
	ap.Date = slot.Date
	ap.Time = slot.Start.String()
	ap.DurationMin = int(slot.Duration / time.Minute)
	ap.StartsAt, ap.EndsAt = slot.Bounds(loc)
}

// SlotOf reads the slot currently held by ap.
func SlotOf(ap *models.Appointment) (Slot, error) {
	start, err := ParseClock(ap.Time)
	if err != nil {
		return Slot{}, err
	}
	dur := time.Duration(ap.DurationMin) * time.Minute
	if dur <= 0 {
		dur = DefaultDuration
	}
	return Slot{Date: ap.Date, Start: start, Duration: dur}, nil
}
