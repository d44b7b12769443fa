// Package ics serializes event collections into iCalendar payloads. It is
// the local fallback used when the remote export endpoint cannot be
// reached; the remote payload is otherwise passed through untouched.
package ics

import (
	"fmt"

	ical "github.com/arran4/golang-ical"

	"schedview/internal/models"
)

const prodID = "-//schedview//calendar export//EN"

// Build renders the events of one schedule into an ICS payload.
func Build(calendarName string, events []models.Event) ([]byte, error) {
	if calendarName == "" {
		calendarName = "schedule"
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)
	cal.SetName(calendarName)
	cal.SetXWRCalName(calendarName)

	for _, ev := range events {
		if ev.EndTime.Before(ev.StartTime) {
			return nil, fmt.Errorf("event %d ends before it starts", ev.ID)
		}
		ve := cal.AddEvent(fmt.Sprintf("event-%d@schedview", ev.ID))
		ve.SetSummary(ev.Title)
		ve.SetStartAt(ev.StartTime)
		ve.SetEndAt(ev.EndTime)
		if !ev.CreatedAt.IsZero() {
			ve.SetCreatedTime(ev.CreatedAt)
		}
		if !ev.UpdatedAt.IsZero() {
			ve.SetModifiedAt(ev.UpdatedAt)
		}
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}
	}

	return []byte(cal.Serialize()), nil
}
