package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

type SlotsInput struct {
	DoctorID uuid.UUID
	Date     time.Time
	Duration time.Duration
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Window is a parsed availability row.
type Window struct {
	Day   Day
	Start Clock
	End   Clock
}

func (w Window) Contains(start Clock, dur time.Duration) bool {
	return start >= w.Start && start.Add(dur) <= w.End
}

// ParseWindow validates an availability row; start must precede end.
func ParseWindow(av models.Availability) (Window, bool) {
	day, err := ParseDay(av.Day)
	if err != nil {
		return Window{}, false
	}
	start, err := ParseClock(av.StartTime)
	if err != nil {
		return Window{}, false
	}
	end, err := ParseClock(av.EndTime)
	if err != nil || start >= end {
		return Window{}, false
	}
	return Window{Day: day, Start: start, End: end}, true
}

// WithinWindows reports whether [start, start+dur) fits entirely inside at
// least one window configured for day. Malformed rows never match.
func WithinWindows(rows []models.Availability, day Day, start Clock, dur time.Duration) bool {
	for _, row := range rows {
		w, ok := ParseWindow(row)
		if !ok || w.Day != day {
			continue
		}
		if w.Contains(start, dur) {
			return true
		}
	}
	return false
}

// Overlaps is the half-open interval test: touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
