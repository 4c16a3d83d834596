package timezone

import "time"

// DefaultTimezone is used when the configured clinic zone cannot be loaded.
const DefaultTimezone = "UTC"

// Resolve loads tz. ok is false when tz was empty or unknown and the
// default zone was returned instead.
func Resolve(tz string) (loc *time.Location, ok bool) {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc, true
		}
	}
	return time.UTC, false
}

// Today is the civil date at now in loc, as midnight UTC.
func Today(now time.Time, loc *time.Location) time.Time {
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
