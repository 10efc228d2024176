package domain

import "fmt"

// Window is a fixed daily clock-hour range a reminder may fire within.
type Window int

const (
	WindowMorning Window = iota
	WindowMidday
	WindowAfternoon
	WindowEvening
)

// AllWindows lists every window in index order.
var AllWindows = []Window{WindowMorning, WindowMidday, WindowAfternoon, WindowEvening}

// Index is the stable 0-3 position used by identity allocation.
func (w Window) Index() int {
	return int(w)
}

// StartHour returns the inclusive local start hour of the window.
func (w Window) StartHour() int {
	switch w {
	case WindowMorning:
		return 6
	case WindowMidday:
		return 10
	case WindowAfternoon:
		return 14
	case WindowEvening:
		return 18
	default:
		panic(fmt.Sprintf("domain: unknown window %d", int(w)))
	}
}

// EndHour returns the exclusive local end hour of the window.
func (w Window) EndHour() int {
	switch w {
	case WindowMorning:
		return 10
	case WindowMidday:
		return 14
	case WindowAfternoon:
		return 18
	case WindowEvening:
		return 22
	default:
		panic(fmt.Sprintf("domain: unknown window %d", int(w)))
	}
}

func (w Window) IsValid() bool {
	switch w {
	case WindowMorning, WindowMidday, WindowAfternoon, WindowEvening:
		return true
	default:
		return false
	}
}

func (w Window) String() string {
	switch w {
	case WindowMorning:
		return "morning"
	case WindowMidday:
		return "midday"
	case WindowAfternoon:
		return "afternoon"
	case WindowEvening:
		return "evening"
	default:
		return fmt.Sprintf("window(%d)", int(w))
	}
}

// ParseWindow maps a window label to its enum value.
func ParseWindow(label string) (Window, error) {
	switch label {
	case "morning":
		return WindowMorning, nil
	case "midday":
		return WindowMidday, nil
	case "afternoon":
		return WindowAfternoon, nil
	case "evening":
		return WindowEvening, nil
	default:
		return 0, fmt.Errorf("%w: unknown window %q", ErrInvalidReminder, label)
	}
}

func (w Window) MarshalText() ([]byte, error) {
	if !w.IsValid() {
		return nil, fmt.Errorf("%w: unknown window %d", ErrInvalidReminder, int(w))
	}
	return []byte(w.String()), nil
}

func (w *Window) UnmarshalText(text []byte) error {
	parsed, err := ParseWindow(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}
