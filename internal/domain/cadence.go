package domain

import "fmt"

// Cadence is the recurrence rule of a reminder.
type Cadence string

const (
	CadenceDaily         Cadence = "daily"
	CadenceWeekly        Cadence = "weekly"
	CadenceMonthly       Cadence = "monthly"
	CadenceMultipleDaily Cadence = "multiple_daily"
)

func (c Cadence) String() string {
	return string(c)
}

func (c Cadence) IsValid() bool {
	switch c {
	case CadenceDaily, CadenceWeekly, CadenceMonthly, CadenceMultipleDaily:
		return true
	default:
		return false
	}
}

func ParseCadence(s string) (Cadence, error) {
	c := Cadence(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: unknown cadence %q", ErrInvalidReminder, s)
	}
	return c, nil
}
