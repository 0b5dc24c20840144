package core

import "time"

// Event is the stored, unified representation of a calendar entry regardless
// of which provider it originated from.
type Event struct {
	Id          string    `json:"id,omitempty"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Provider    string    `json:"provider,omitempty"`
	StartTime   time.Time `json:"start_time,omitempty"`
	EndTime     time.Time `json:"end_time,omitempty"`
	IsAllDay    bool      `json:"is_all_day,omitempty"`
	Recurrence  string    `json:"recurrence,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// ParsedEvent is the result of running the voice parser over a free-form
// utterance. It is an ephemeral value; persistence happens elsewhere.
type ParsedEvent struct {
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
}

// VoiceEventData is the loosely-typed record produced by the voice/form UI.
// Date is either a raw phrase ("tomorrow", "August 15") or a strict
// YYYY-MM-DD string; Time is either a raw phrase ("5 pm") or an
// "HH:MM AM - HH:MM PM" range string.
type VoiceEventData struct {
	Title       string      `json:"title"`
	Date        string      `json:"date,omitempty"`
	Time        string      `json:"time,omitempty"`
	Duration    string      `json:"duration,omitempty"`
	Location    string      `json:"location,omitempty"`
	Description string      `json:"description,omitempty"`
	Provider    string      `json:"provider,omitempty"`
	Repeat      *RepeatRule `json:"repeat,omitempty"`
}

// EventFormData is what the fallback converter hands to the provider
// integrations. Start and End are RFC 3339 strings.
type EventFormData struct {
	Title       string      `json:"title"`
	Start       string      `json:"start"`
	End         string      `json:"end"`
	Description string      `json:"description,omitempty"`
	Location    string      `json:"location,omitempty"`
	IsAllDay    bool        `json:"isAllDay"`
	Repeat      *RepeatRule `json:"repeat,omitempty"`
}

// RepeatRule is the recurrence descriptor attached to voice/form input. The
// converter passes it through untouched; encoding to an RRULE string for
// storage or export is done separately by EncodeRepeat.
type RepeatRule struct {
	Frequency string   `json:"frequency"`
	Interval  int      `json:"interval,omitempty"`
	Count     int      `json:"count,omitempty"`
	Until     string   `json:"until,omitempty"`
	ByDay     []string `json:"byDay,omitempty"`
}
