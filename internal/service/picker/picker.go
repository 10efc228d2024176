package picker

import (
	"time"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/window"
)

// MinSafetyBuffer is the smallest lead time accepted between now and a fire instant.
const MinSafetyBuffer = time.Minute

// Picker places one pseudo-random instant inside a window.
type Picker struct {
	resolver     *window.Resolver
	clock        domain.Clock
	safetyBuffer time.Duration
}

func NewPicker(resolver *window.Resolver, clock domain.Clock, safetyBuffer time.Duration) *Picker {
	if safetyBuffer < MinSafetyBuffer {
		safetyBuffer = MinSafetyBuffer
	}
	return &Picker{
		resolver:     resolver,
		clock:        clock,
		safetyBuffer: safetyBuffer,
	}
}

func (p *Picker) SafetyBuffer() time.Duration {
	return p.safetyBuffer
}

// Pick returns a whole-minute instant in the usable part of w on date, or
// domain.ErrElapsed when nothing of the window is left.
//
// For today the floor is the later of the window start and the first whole
// minute strictly after now+safetyBuffer. The result is finally checked
// against the live clock, since a long batch can outrun the now it was given.
func (p *Picker) Pick(date time.Time, w domain.Window, now time.Time, isToday bool, rng domain.RandomSource) (time.Time, error) {
	windowStart, windowEnd := p.resolver.Boundaries(date, w)

	floor := windowStart
	if isToday {
		earliest := ceilMinute(now.Add(p.safetyBuffer))
		if earliest.After(floor) {
			floor = earliest
		}
	}

	if !floor.Before(windowEnd) {
		return time.Time{}, domain.ErrElapsed
	}

	candidate := floor
	if span := int(windowEnd.Sub(floor) / time.Minute); span > 1 {
		candidate = floor.Add(time.Duration(rng.IntN(span)) * time.Minute)
	}

	if live := p.clock.Now(); !candidate.After(live) {
		candidate = live.Add(time.Minute)
	}

	return candidate, nil
}

// ceilMinute returns the first whole minute strictly after t.
func ceilMinute(t time.Time) time.Time {
	return t.Truncate(time.Minute).Add(time.Minute)
}
