package core

import (
	"regexp"
	"strings"
	"time"
)

// Sub-expressions shared by the extraction patterns. The time literal admits
// the four am/pm spellings; the month-day phrase admits ordinal suffixes and
// an optional ", YYYY" tail in every pattern that uses it.
const (
	timeLiteral  = `\d{1,2}(?::\d{2})?\s*(?:am|pm|a\.m\.|p\.m\.)`
	monthDay     = `\w+\s+\d{1,2}(?:st|nd|rd|th)?(?:\s*,\s*\d{4})?`
	weekdayNames = `monday|tuesday|wednesday|thursday|friday|saturday|sunday`
	eventWords   = `meeting|call|appointment|coffee|lunch|dinner|event`
	monthNames   = `january|february|march|april|may|june|july|august|september|october|november|december`
)

type extractPattern struct {
	re *regexp.Regexp
	// timeFirst marks patterns whose second capture is the time literal and
	// third is the date phrase. Registered per pattern instead of sniffing
	// the captured text, since the same pattern family appears in both
	// orderings.
	timeFirst bool
	// guardTrailingIn rejects a match immediately followed by "in <word>",
	// keeping the generic catch-all from swallowing the
	// "<event> in <month day> at <time>" shape.
	guardTrailingIn bool
}

// extractPatterns is tried in order, most specific construct first; the first
// pattern that matches wins. Several of the generic tails can match the same
// utterance, so this ordering is load-bearing.
var extractPatterns = []extractPattern{
	// <event> in <month day[, year]> at <time>
	{re: regexp.MustCompile(`([a-z]+(?:\s+[a-z]+)*)\s+in\s+(` + monthDay + `)\s+at\s+(` + timeLiteral + `)`)},
	// <event> on <month day[, year]> at <time>
	{re: regexp.MustCompile(`([a-z]+(?:\s+[a-z]+)*)\s+on\s+(` + monthDay + `)\s+at\s+(` + timeLiteral + `)`)},
	// <event> <month day[, year]> at <time>
	{re: regexp.MustCompile(`([a-z]+(?:\s+[a-z]+)*)\s+(` + monthDay + `)\s+at\s+(` + timeLiteral + `)`)},
	// <event> at <time> on <month day[, year]>
	{re: regexp.MustCompile(`([a-z]+(?:\s+[a-z]+)*)\s+at\s+(` + timeLiteral + `)\s+on\s+(` + monthDay + `)`), timeFirst: true},
	// <event> on <weekday> at <time>
	{re: regexp.MustCompile(`([a-z]+(?:\s+[a-z]+)*)\s+on\s+(` + weekdayNames + `)\s+at\s+(` + timeLiteral + `)`)},
	// <known event word> at <time> <relative date>
	{re: regexp.MustCompile(`(` + eventWords + `)\s+at\s+(` + timeLiteral + `)(?:\s+(?:on|this|next|)?\s*)?(tomorrow|today|` + weekdayNames + `)`), timeFirst: true},
	// <known event word> <relative date> at <time>
	{re: regexp.MustCompile(`(` + eventWords + `)\s+(tomorrow|today|next\s+(?:` + weekdayNames + `)|(?:this\s+)?(?:` + weekdayNames + `))(?:\s+at\s+)(` + timeLiteral + `)`)},
	// <up to four words> at <time> <relative date>, unless followed by "in <word>"
	{re: regexp.MustCompile(`([a-z]+(?:\s+[a-z]+){0,3})\s+at\s+(` + timeLiteral + `)(?:\s+(?:on|this|next|)?\s*)?(tomorrow|today|` + weekdayNames + `)`), timeFirst: true, guardTrailingIn: true},
	// <known event word> <relative date> at <time>, alternate-ordering fallback
	{re: regexp.MustCompile(`(` + eventWords + `)\s+(tomorrow|today|next\s+(?:` + weekdayNames + `)|(?:this\s+)?(?:` + weekdayNames + `))\s+at\s+(` + timeLiteral + `)`)},
}

// trailingInRe stands in for a negative lookahead, which RE2 does not
// support.
var trailingInRe = regexp.MustCompile(`^\s+in\s+\w+`)

var (
	locationRe            = regexp.MustCompile(`(?:at|in)\s+([^,]+?)\s+(?:on|at|tomorrow|today|` + weekdayNames + `|\d|` + monthNames + `)`)
	trailingPrepositionRe = regexp.MustCompile(`\s+(in|on|at)$`)
)

// VoiceParser turns free-form utterances into structured events. It is pure
// and stateless apart from the injectable clock, so a single instance is safe
// for concurrent use.
type VoiceParser struct {
	now      func() time.Time
	location *time.Location
}

func NewVoiceParser() *VoiceParser {
	return &VoiceParser{
		now:      time.Now,
		location: time.Local,
	}
}

// SetNow pins the parser's clock, so relative-date resolution is
// deterministic under test.
func (p *VoiceParser) SetNow(now time.Time) {
	p.now = func() time.Time { return now }
	p.location = now.Location()
}

// Parse extracts a structured event from an utterance like
// "BC hydro on August 15 at 5 pm". It returns nil when no pattern matches;
// unparseable input is an expected case, not an error.
func (p *VoiceParser) Parse(text string) *ParsedEvent {
	lower := strings.ToLower(text)

	for _, pattern := range extractPatterns {
		match := pattern.find(lower)
		if match == nil {
			continue
		}

		eventPhrase := match[1]

		var datePhrase, timePhrase string
		if pattern.timeFirst {
			timePhrase, datePhrase = match[2], match[3]
		} else {
			datePhrase, timePhrase = match[2], match[3]
		}

		clock, ok := resolveTime(timePhrase)
		if !ok {
			continue
		}

		day, ok := p.resolveDate(datePhrase)
		if !ok {
			continue
		}

		return p.assemble(eventPhrase, day, clock, datePhrase, timePhrase, lower)
	}

	return nil
}

func (pattern extractPattern) find(text string) []string {
	if !pattern.guardTrailingIn {
		return pattern.re.FindStringSubmatch(text)
	}

	// Retry from successive positions so the guard only suppresses the
	// colliding match, not the whole pattern.
	offset := 0
	for offset <= len(text) {
		loc := pattern.re.FindStringSubmatchIndex(text[offset:])
		if loc == nil {
			return nil
		}

		if !trailingInRe.MatchString(text[offset+loc[1]:]) {
			groups := make([]string, 0, len(loc)/2)
			for i := 0; i < len(loc); i += 2 {
				if loc[i] < 0 {
					groups = append(groups, "")
					continue
				}
				groups = append(groups, text[offset+loc[i]:offset+loc[i+1]])
			}

			return groups
		}

		offset += loc[0] + 1
	}

	return nil
}

func (p *VoiceParser) assemble(eventPhrase string, day time.Time, clock clockTime, datePhrase, timePhrase, fullText string) *ParsedEvent {
	start := time.Date(day.Year(), day.Month(), day.Day(), clock.hour, clock.minute, 0, 0, p.location)
	end := start.Add(time.Hour)

	location := ""
	if match := locationRe.FindStringSubmatch(fullText); match != nil {
		location = strings.TrimSpace(match[1])
	}

	// A capture that itself reads as a date was a date fragment, not a place.
	if location != "" {
		if _, isDate := p.resolveDate(location); isDate || strings.Contains(datePhrase, location) {
			location = ""
		}
	}

	parts := []string{"Date: " + datePhrase, "Time: " + timePhrase}
	if location != "" {
		parts = append(parts, "Location: "+location)
	}

	title := trailingPrepositionRe.ReplaceAllString(capitalize(eventPhrase), "")

	return &ParsedEvent{
		Title:       title,
		Start:       start,
		End:         end,
		Description: strings.Join(parts, ", "),
		Location:    location,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseVoiceToEvent is the package-level entry point for callers that want
// the wall clock.
func ParseVoiceToEvent(text string) *ParsedEvent {
	return NewVoiceParser().Parse(text)
}

// ConvertVoiceDataToEventData is the package-level form-data adapter, again
// on the wall clock.
func ConvertVoiceDataToEventData(voiceData VoiceEventData) EventFormData {
	return NewVoiceParser().ConvertVoiceData(voiceData)
}
