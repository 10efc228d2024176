package window

import (
	"time"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
)

// Resolver maps windows to concrete daily boundaries.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Boundaries returns [start, end) of w on date's calendar day, in date's location.
func (r *Resolver) Boundaries(date time.Time, w domain.Window) (start, end time.Time) {
	y, m, d := date.Date()
	loc := date.Location()

	start = time.Date(y, m, d, w.StartHour(), 0, 0, 0, loc)
	end = time.Date(y, m, d, w.EndHour(), 0, 0, 0, loc)
	return start, end
}

// UsableToday returns the windows whose end boundary has not been reached.
// A window stays usable until its end, not its start.
func (r *Resolver) UsableToday(now time.Time) []domain.Window {
	usable := make([]domain.Window, 0, len(domain.AllWindows))
	for _, w := range domain.AllWindows {
		if now.Hour() < w.EndHour() {
			usable = append(usable, w)
		}
	}
	return usable
}

// UsableFor intersects UsableToday(now) with configured, keeping configured order.
func (r *Resolver) UsableFor(now time.Time, configured []domain.Window) []domain.Window {
	usable := r.UsableToday(now)

	result := make([]domain.Window, 0, len(configured))
	for _, w := range configured {
		for _, u := range usable {
			if w == u {
				result = append(result, w)
				break
			}
		}
	}
	return result
}
