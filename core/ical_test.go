package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCalendar(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

	events := []Event{
		{
			Id:          "evt-1",
			Title:       "Team meeting",
			Description: "Date: monday, Time: 10am",
			Location:    "boardroom",
			StartTime:   time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC),
			EndTime:     time.Date(2025, 3, 17, 11, 0, 0, 0, time.UTC),
			Recurrence:  "FREQ=WEEKLY",
			CreatedAt:   time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC),
		},
		{
			Id:        "evt-2",
			Title:     "Company offsite",
			StartTime: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
			IsAllDay:  true,
		},
	}

	serialized := BuildCalendar(events, now).Serialize()

	assert.Contains(t, serialized, "BEGIN:VCALENDAR")
	assert.Contains(t, serialized, "METHOD:PUBLISH")
	assert.Contains(t, serialized, "UID:evt-1")
	assert.Contains(t, serialized, "SUMMARY:Team meeting")
	assert.Contains(t, serialized, "LOCATION:boardroom")
	assert.Contains(t, serialized, "RRULE:FREQ=WEEKLY")
	assert.Contains(t, serialized, "DTSTART:20250317T100000Z")
	assert.Contains(t, serialized, "DTEND:20250317T110000Z")
	assert.Contains(t, serialized, "UID:evt-2")
	assert.Contains(t, serialized, "DTSTART;VALUE=DATE:20250602")
	assert.Contains(t, serialized, "END:VCALENDAR")
}

func TestBuildCalendar_SynthesizesMissingUid(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC)

	cal := BuildCalendar([]Event{{
		Title:     "Untracked",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}}, start)

	components := cal.Events()
	require.Len(t, components, 1)
	assert.Contains(t, cal.Serialize(), "@calendar-sync")
}

func TestBuildCalendar_Empty(t *testing.T) {
	t.Parallel()

	cal := BuildCalendar(nil, time.Now())

	assert.Empty(t, cal.Events())
	assert.Contains(t, cal.Serialize(), "BEGIN:VCALENDAR")
}
