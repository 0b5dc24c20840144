package core

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var monthNumbers = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// Checked in this order; the weekday is matched as a substring so that
// "next monday" and "this monday" both resolve.
var namedWeekdays = []struct {
	name string
	day  time.Weekday
}{
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sunday", time.Sunday},
}

var monthDayRe = regexp.MustCompile(`^(\w+)\s+(\d{1,2})(?:st|nd|rd|th)?(?:\s*,\s*(\d{4}))?$`)

// resolveDate turns a date phrase (weekday name, "today"/"tomorrow", or
// "Month Day[, Year]") into a calendar date at local midnight.
//
// A weekday naming today's own weekday without a "next" qualifier resolves to
// next week's occurrence, never today. That mirrors how the voice UI has
// always behaved, so it stays.
func (p *VoiceParser) resolveDate(phrase string) (time.Time, bool) {
	lower := strings.ToLower(strings.TrimSpace(phrase))
	today := p.today()

	if lower == "today" {
		return today, true
	}

	if lower == "tomorrow" {
		return today.AddDate(0, 0, 1), true
	}

	if match := monthDayRe.FindStringSubmatch(lower); match != nil {
		if month, known := monthNumbers[match[1]]; known {
			day, _ := strconv.Atoi(match[2])

			year := today.Year()
			explicitYear := match[3] != ""
			if explicitYear {
				year, _ = strconv.Atoi(match[3])
			}

			target := time.Date(year, month, day, 0, 0, 0, 0, p.location)

			// Without an explicit year, a date already behind us means
			// next year's occurrence.
			if !explicitYear && target.Before(today) {
				target = target.AddDate(1, 0, 0)
			}

			return target, true
		}
	}

	for _, weekday := range namedWeekdays {
		if !strings.Contains(lower, weekday.name) {
			continue
		}

		daysAhead := int(weekday.day) - int(today.Weekday())
		if strings.Contains(lower, "next") {
			daysAhead += 7
		} else if daysAhead <= 0 {
			daysAhead += 7
		}

		return today.AddDate(0, 0, daysAhead), true
	}

	return time.Time{}, false
}

func (p *VoiceParser) today() time.Time {
	now := p.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, p.location)
}
