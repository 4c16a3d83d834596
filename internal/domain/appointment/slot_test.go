package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

func TestParseClock(t *testing.T) {
	cases := map[string]Clock{
		"09:00":    540,
		"9:05":     545,
		"17:30:00": 1050,
		"24:00":    1440,
	}
	for raw, want := range cases {
		got, err := ParseClock(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"", "25:00", "09:60", "noon", "09:30:15"} {
		_, err := ParseClock(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"":         30 * time.Minute,
		"45":       45 * time.Minute,
		"45m":      45 * time.Minute,
		"1h30m":    90 * time.Minute,
		"01:00":    time.Hour,
		"00:15:00": 15 * time.Minute,
	}
	for raw, want := range cases {
		got, err := ParseDuration(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{
		"0", "-10m", "90s", "25h", "1:2:3:4", "abc",
		"1441",
		"9007199254741022",
		"9223372036854775807:00",
		"00:9007199254741022",
	} {
		_, err := ParseDuration(raw)
		assert.Error(t, err, raw)
	}
}

func TestSlot_BoundsAndValidate(t *testing.T) {
	date, err := ParseDate("2030-01-07")
	require.NoError(t, err)

	loc := time.FixedZone("BRT", -3*60*60)

	s := Slot{Date: date, Start: 9 * 60, Duration: 45 * time.Minute}
	start, end := s.Bounds(loc)

	assert.Equal(t, 9, start.Hour())
	assert.Equal(t, loc, start.Location())
	assert.Equal(t, 45*time.Minute, end.Sub(start))
	assert.Equal(t, "09:45", s.End().String())
	assert.Equal(t, Monday, s.Day())
	assert.NoError(t, s.Validate())

	late := Slot{Date: date, Start: 23*60 + 45, Duration: 30 * time.Minute}
	assert.Error(t, late.Validate())

	last := Slot{Date: date, Start: 23*60 + 30, Duration: 30 * time.Minute}
	assert.NoError(t, last.Validate())
}

func TestWithinWindows(t *testing.T) {
	rows := []models.Availability{
		{Day: "Monday", StartTime: "09:00", EndTime: "12:00"},
		{Day: "monday", StartTime: "14:00", EndTime: "16:00"},
		{Day: "tuesday", StartTime: "18:00", EndTime: "08:00"}, // malformed
		{Day: "funday", StartTime: "09:00", EndTime: "10:00"},
	}

	assert.True(t, WithinWindows(rows, Monday, 9*60, 30*time.Minute))
	assert.True(t, WithinWindows(rows, Monday, 11*60+30, 30*time.Minute))
	assert.True(t, WithinWindows(rows, Monday, 14*60, 2*time.Hour))

	assert.False(t, WithinWindows(rows, Monday, 11*60+45, 30*time.Minute))
	assert.False(t, WithinWindows(rows, Monday, 12*60, 30*time.Minute))
	assert.False(t, WithinWindows(rows, Monday, 8*60+45, 30*time.Minute))
	assert.False(t, WithinWindows(rows, Tuesday, 19*60, 30*time.Minute))
	assert.False(t, WithinWindows(nil, Monday, 9*60, 30*time.Minute))
}

func TestOverlaps(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2030, 1, 7, h, m, 0, 0, time.UTC) }

	assert.True(t, Overlaps(at(9, 0), at(10, 0), at(9, 30), at(10, 30)))
	assert.True(t, Overlaps(at(9, 0), at(10, 0), at(9, 15), at(9, 45)))
	assert.False(t, Overlaps(at(9, 0), at(9, 30), at(9, 30), at(10, 0)))
	assert.False(t, Overlaps(at(9, 30), at(10, 0), at(9, 0), at(9, 30)))
}

func TestStatusTransitions(t *testing.T) {
	now := time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.Equal(t, now, *ap.CancelledAt)

	assert.Error(t, Complete(ap, now))
	assert.Error(t, Cancel(ap, now))
}

func TestParseTypeAndDay(t *testing.T) {
	typ, err := ParseType("In-Person")
	require.NoError(t, err)
	assert.Equal(t, TypeInPerson, typ)

	_, err = ParseType("")
	assert.Error(t, err)

	day, err := ParseDay(" Friday ")
	require.NoError(t, err)
	assert.Equal(t, Friday, day)

	_, err = ParseDay("fri")
	assert.Error(t, err)
}
