package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/httperr"
)

type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

var weekdays = map[time.Weekday]Day{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

func DayOf(date time.Time) Day {
	return weekdays[date.Weekday()]
}

func ParseDay(raw string) (Day, error) {
	d := Day(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range weekdays {
		if d == known {
			return d, nil
		}
	}
	return "", httperr.ErrValidation("invalid_day")
}
