package core

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

// BuildCalendar renders stored events as a VCALENDAR feed, so a subscribed
// client sees the same unified view the dashboard does.
func BuildCalendar(events []Event, now time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	for _, event := range events {
		uid := event.Id
		if uid == "" {
			uid = fmt.Sprintf("%d@calendar-sync", event.StartTime.Unix())
		}

		entry := cal.AddEvent(uid)
		entry.SetDtStampTime(now)
		entry.SetSummary(event.Title)

		if event.Description != "" {
			entry.SetDescription(event.Description)
		}

		if event.Location != "" {
			entry.SetLocation(event.Location)
		}

		if event.IsAllDay {
			entry.SetAllDayStartAt(event.StartTime)
			entry.SetAllDayEndAt(event.EndTime)
		} else {
			entry.SetStartAt(event.StartTime)
			entry.SetEndAt(event.EndTime)
		}

		if event.Recurrence != "" {
			entry.AddRrule(event.Recurrence)
		}

		if !event.CreatedAt.IsZero() {
			entry.SetCreatedTime(event.CreatedAt)
		}
	}

	return cal
}
