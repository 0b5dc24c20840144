package core

import (
	"regexp"
	"strconv"
	"strings"
)

type clockTime struct {
	hour   int
	minute int
}

// The period-punctuated spellings ("5 p.m.") collapse onto these two shapes
// once periods and internal whitespace are stripped.
var clockLiterals = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{1,2}):(\d{2})(am|pm)$`),
	regexp.MustCompile(`^(\d{1,2})(am|pm)$`),
}

var internalSpaceRe = regexp.MustCompile(`\s+`)

// resolveTime converts a 12-hour literal ("5 pm", "10:30am", "2 p.m.") into a
// 24-hour clock time. Anything else, 24-hour literals and "noon" included,
// fails closed.
func resolveTime(phrase string) (clockTime, bool) {
	normalized := strings.ToLower(phrase)
	normalized = strings.ReplaceAll(normalized, ".", "")
	normalized = internalSpaceRe.ReplaceAllString(normalized, "")

	for _, literal := range clockLiterals {
		match := literal.FindStringSubmatch(normalized)
		if match == nil {
			continue
		}

		hour, _ := strconv.Atoi(match[1])
		minute := 0
		period := match[len(match)-1]

		if len(match) == 4 {
			minute, _ = strconv.Atoi(match[2])
		}

		if period == "pm" && hour != 12 {
			hour += 12
		}

		if period == "am" && hour == 12 {
			hour = 0
		}

		return clockTime{hour: hour, minute: minute}, true
	}

	return clockTime{}, false
}
