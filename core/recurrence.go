package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

var repeatFrequencies = map[string]rrule.Frequency{
	"daily":   rrule.DAILY,
	"weekly":  rrule.WEEKLY,
	"monthly": rrule.MONTHLY,
	"yearly":  rrule.YEARLY,
}

var repeatWeekdays = map[string]rrule.Weekday{
	"mo": rrule.MO,
	"tu": rrule.TU,
	"we": rrule.WE,
	"th": rrule.TH,
	"fr": rrule.FR,
	"sa": rrule.SA,
	"su": rrule.SU,
}

// EncodeRepeat renders a repeat descriptor as an RFC 5545 RRULE value for
// provider payloads and the ICS feed. Occurrence expansion is the consuming
// provider's concern, not ours.
func EncodeRepeat(repeat *RepeatRule, start time.Time) (string, error) {
	if repeat == nil {
		return "", nil
	}

	frequency, known := repeatFrequencies[strings.ToLower(repeat.Frequency)]
	if !known {
		return "", fmt.Errorf("unsupported repeat frequency %q", repeat.Frequency)
	}

	// Dtstart is left unset so String() yields the bare rule value; the
	// event's own start already carries the anchor.
	option := rrule.ROption{
		Freq:     frequency,
		Interval: repeat.Interval,
		Count:    repeat.Count,
	}

	if repeat.Until != "" {
		until, err := time.ParseInLocation("2006-01-02", repeat.Until, start.Location())
		if err != nil {
			return "", fmt.Errorf("invalid repeat until date: %w", err)
		}

		option.Until = until
	}

	for _, day := range repeat.ByDay {
		weekday, known := repeatWeekdays[strings.ToLower(day)]
		if !known {
			return "", fmt.Errorf("unsupported repeat weekday %q", day)
		}

		option.Byweekday = append(option.Byweekday, weekday)
	}

	rule, err := rrule.NewRRule(option)
	if err != nil {
		return "", fmt.Errorf("failed to build recurrence rule: %w", err)
	}

	return rule.String(), nil
}
