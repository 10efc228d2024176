// Package icsexport renders generated reminder schedules as iCalendar
// documents so a preview can be opened in any calendar client.
package icsexport

import (
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
)

const (
	productID = "-//KasumiMercury//primind-mindfulness-reminder//EN"
	uidDomain = "mindfulness-reminder.primind"

	// EventDuration is the calendar length of a notification; the
	// notification itself is instantaneous.
	EventDuration = 5 * time.Minute
)

func Build(reminder domain.Reminder, events []domain.ScheduledEvent, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName(reminder.NotificationTitle())

	for _, ev := range events {
		vevent := cal.AddEvent(ev.SinkKey() + "@" + uidDomain)
		vevent.SetDtStampTime(stamp.UTC())
		vevent.SetStartAt(ev.FireAt.UTC())
		vevent.SetEndAt(ev.FireAt.Add(EventDuration).UTC())
		vevent.SetSummary(ev.Title)
		vevent.SetDescription(ev.Body)
		vevent.AddProperty(ical.ComponentPropertyCategories, ev.Window.String())
	}

	return cal
}

func Write(w io.Writer, reminder domain.Reminder, events []domain.ScheduledEvent, stamp time.Time) error {
	return Build(reminder, events, stamp).SerializeTo(w)
}
