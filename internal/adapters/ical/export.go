package ical

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"eventease/internal/domain"
)

const productID = "-//eventease//event feed//FR"

// defaultDuration is used for VEVENT end times; events carry a single
// instant, not a duration.
const defaultDuration = time.Hour

// Export serializes events to a VCALENDAR. Events whose date cannot be
// parsed are skipped.
func Export(events []domain.EventWithStatus, calendarName string) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(calendarName)

	now := time.Now().UTC()
	count := 0
	for _, e := range events {
		start := e.Time()
		if start.IsZero() {
			continue
		}
		ev := cal.AddEvent(fmt.Sprintf("%s@eventease", e.ID))
		ev.SetDtStampTime(now)
		ev.SetStartAt(start)
		ev.SetEndAt(start.Add(defaultDuration))
		ev.SetSummary(e.Title)
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		if e.Location != "" {
			ev.SetLocation(e.Location)
		}
		count++
	}
	if count == 0 && len(events) > 0 {
		return "", fmt.Errorf("no exportable events: all %d dates unparseable", len(events))
	}
	return cal.Serialize(), nil
}

// ExportParticipations exports only the events the user participates in.
func ExportParticipations(events []domain.EventWithStatus, calendarName string) (string, error) {
	var participated []domain.EventWithStatus
	for _, e := range events {
		if e.Participated {
			participated = append(participated, e)
		}
	}
	return Export(participated, calendarName)
}
