package appointment

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
)

const (
	DateLayout      = "2006-01-02"
	ClockLayout     = "15:04"
	DefaultDuration = 30 * time.Minute
	minutesPerDay   = 24 * 60
)

// Clock is a time of day in minutes after midnight. 24:00 is accepted as a
// window end.
type Clock int

func ParseClock(raw string) (Clock, error) {
	raw = strings.TrimSpace(raw)
	if raw == "24:00" {
		return Clock(minutesPerDay), nil
	}
	// tolerate seconds, e.g. "09:30:00"
	if len(raw) == 8 && strings.HasSuffix(raw, ":00") {
		raw = raw[:5]
	}
	t, err := time.Parse(ClockLayout, raw)
	if err != nil {
		return 0, httperr.ErrValidation("invalid_time")
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) Add(d time.Duration) Clock {
	return c + Clock(d/time.Minute)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// ParseDate parses YYYY-MM-DD into a calendar date at UTC midnight.
func ParseDate(raw string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date")
	}
	return d, nil
}

// ParseDuration accepts "45m"/"1h30m", "HH:MM"/"HH:MM:SS" spans or bare minutes.
// An empty value yields DefaultDuration.
func ParseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultDuration, nil
	}

	var d time.Duration
	switch {
	case strings.Contains(raw, ":"):
		parts := strings.Split(raw, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return 0, httperr.ErrValidation("invalid_duration")
		}
		// each part is bounded before multiplying so it cannot wrap
		limits := []int{24, 24 * 60, 24 * 60 * 60}
		units := []time.Duration{time.Hour, time.Minute, time.Second}
		for i, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil || n < 0 || n > limits[i] {
				return 0, httperr.ErrValidation("invalid_duration")
			}
			d += time.Duration(n) * units[i]
		}
	default:
		if n, err := strconv.Atoi(raw); err == nil {
			if n <= 0 || n > minutesPerDay {
				return 0, httperr.ErrValidation("invalid_duration")
			}
			d = time.Duration(n) * time.Minute
			break
		}
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return 0, httperr.ErrValidation("invalid_duration")
		}
		d = parsed
	}

	if d <= 0 || d%time.Minute != 0 || d > 24*time.Hour {
		return 0, httperr.ErrValidation("invalid_duration")
	}
	return d, nil
}

// Slot is a (date, start, duration) tuple, either requested or booked.
type Slot struct {
	Date     time.Time
	Start    Clock
	Duration time.Duration
}

func (s Slot) End() Clock {
	return s.Start.Add(s.Duration)
}

// Validate rejects slots that spill over midnight.
func (s Slot) Validate() error {
	if s.Start < 0 || int(s.End()) > minutesPerDay {
		return httperr.ErrValidation("invalid_time")
	}
	return nil
}

func (s Slot) Day() Day {
	return DayOf(s.Date)
}

// Bounds resolves the slot to absolute instants in loc.
func (s Slot) Bounds(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(
		s.Date.Year(), s.Date.Month(), s.Date.Day(),
		s.Start.Hour(), s.Start.Minute(), 0, 0,
		loc,
	)
	return start, start.Add(s.Duration)
}
