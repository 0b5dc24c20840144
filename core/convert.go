package core

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	strictDateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	formTimeRe    = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(am|pm)`)
	looseTimeRe   = regexp.MustCompile(`(?i)(\d{1,2}):?(\d{2})?\s*(am|pm)`)
	formWeekdayRe = regexp.MustCompile(`^(monday|tuesday|wednesday|thursday|friday|saturday|sunday)$`)
)

// ConvertVoiceData adapts structured or semi-structured form input into the
// shape the provider integrations consume. Unlike Parse it never fails: each
// strategy degrades to the next, terminating at "start now".
func (p *VoiceParser) ConvertVoiceData(voiceData VoiceEventData) EventFormData {
	// A strict YYYY-MM-DD date skips the pattern cascade entirely.
	if strictDateRe.MatchString(voiceData.Date) {
		start := p.strictDate(voiceData.Date)

		if voiceData.Time != "" {
			if match := formTimeRe.FindStringSubmatch(voiceData.Time); match != nil {
				hour, minute := convertTwelveHour(match[1], match[2], match[3])
				start = time.Date(start.Year(), start.Month(), start.Day(), hour, minute, 0, 0, p.location)
			}
		}

		return p.formData(voiceData, start)
	}

	// Re-run the full cascade against a synthetic utterance.
	if parsed := p.Parse(voiceData.Title + " " + voiceData.Time + " " + voiceData.Date); parsed != nil {
		return EventFormData{
			Title:       parsed.Title,
			Start:       parsed.Start.Format(time.RFC3339),
			End:         parsed.End.Format(time.RFC3339),
			Description: parsed.Description,
			Location:    parsed.Location,
			IsAllDay:    false,
			Repeat:      voiceData.Repeat,
		}
	}

	if voiceData.Date != "" || voiceData.Time != "" {
		if start, ok := p.resolveFormDateTime(voiceData.Date, voiceData.Time); ok {
			return p.formData(voiceData, start)
		}
	}

	return p.formData(voiceData, p.now())
}

// resolveFormDateTime is the loosest strategy: weekday/tomorrow/today only,
// plus an unpunctuated time literal. The date delta is applied to the current
// instant, so an unqualified weekday equal to today stays today here.
func (p *VoiceParser) resolveFormDateTime(datePhrase, timePhrase string) (time.Time, bool) {
	target := p.now()
	resolved := false

	if datePhrase != "" {
		lower := strings.ToLower(datePhrase)

		switch {
		case lower == "tomorrow":
			target = target.AddDate(0, 0, 1)
			resolved = true
		case lower == "today":
			resolved = true
		case formWeekdayRe.MatchString(lower):
			daysToAdd := (weekdayNumber(lower) - int(target.Weekday()) + 7) % 7
			target = target.AddDate(0, 0, daysToAdd)
			resolved = true
		}
	}

	if timePhrase != "" {
		if match := looseTimeRe.FindStringSubmatch(timePhrase); match != nil {
			hour, minute := convertTwelveHour(match[1], match[2], match[3])
			target = time.Date(target.Year(), target.Month(), target.Day(), hour, minute, 0, 0, p.location)
			resolved = true
		}
	}

	return target, resolved
}

// strictDate interprets YYYY-MM-DD as local calendar components. A generic
// date-string parse would read it as UTC midnight and shift the day in
// western timezones.
func (p *VoiceParser) strictDate(value string) time.Time {
	parts := strings.SplitN(value, "-", 3)

	year, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])
	day, _ := strconv.Atoi(parts[2])

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, p.location)
}

func (p *VoiceParser) formData(voiceData VoiceEventData, start time.Time) EventFormData {
	return EventFormData{
		Title:       voiceData.Title,
		Start:       start.Format(time.RFC3339),
		End:         start.Add(time.Hour).Format(time.RFC3339),
		Description: voiceData.Description,
		Location:    voiceData.Location,
		IsAllDay:    false,
		Repeat:      voiceData.Repeat,
	}
}

func convertTwelveHour(hourStr, minuteStr, period string) (int, int) {
	hour, _ := strconv.Atoi(hourStr)

	minute := 0
	if minuteStr != "" {
		minute, _ = strconv.Atoi(minuteStr)
	}

	switch strings.ToLower(period) {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	return hour, minute
}

func weekdayNumber(name string) int {
	for _, weekday := range namedWeekdays {
		if weekday.name == name {
			return int(weekday.day)
		}
	}

	return 0
}
