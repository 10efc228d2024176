package schedule

import (
	"time"

	"github.com/teambition/rrule-go"
)

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b, ignoring DST shifts.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from) / (24 * time.Hour))
}

// addMonthsClamped moves t by months, keeping the day of month when it
// exists in the target month and using the month's last day otherwise.
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	hour, minute, sec := t.Clock()
	loc := t.Location()

	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, loc)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, hour, minute, sec, t.Nanosecond(), loc)
}

// isoWeekday maps 1=Monday ... 7=Sunday to the rrule weekday.
func isoWeekday(iso int) rrule.Weekday {
	switch iso {
	case 1:
		return rrule.MO
	case 2:
		return rrule.TU
	case 3:
		return rrule.WE
	case 4:
		return rrule.TH
	case 5:
		return rrule.FR
	case 6:
		return rrule.SA
	default:
		return rrule.SU
	}
}
