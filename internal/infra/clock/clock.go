package clock

import (
	"time"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
)

type systemClock struct {
	location *time.Location
}

// NewSystemClock returns a clock reporting wall time in location.
// A nil location means time.Local.
func NewSystemClock(location *time.Location) domain.Clock {
	if location == nil {
		location = time.Local
	}
	return &systemClock{location: location}
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.location)
}

type fixedClock struct {
	at time.Time
}

// NewFixedClock always reports at. Used for virtual-time previews and tests.
func NewFixedClock(at time.Time) domain.Clock {
	return &fixedClock{at: at}
}

func (c *fixedClock) Now() time.Time {
	return c.at
}
