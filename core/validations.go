package core

import (
	"errors"
	"fmt"
	"strings"
)

var knownProviders = map[string]struct{}{
	"google":   {},
	"outlook":  {},
	"notion":   {},
	"apple":    {},
	"azure-ad": {},
}

func ValidateEvent(event Event) error {
	event.Title = strings.TrimSpace(event.Title)
	if len(event.Title) == 0 {
		return errors.New("title is required")
	}

	if len(event.Title) > 100 {
		return errors.New("title is too long (100 characters tops)")
	}

	if event.EndTime.Before(event.StartTime) {
		return errors.New("end time must be after start time")
	}

	if event.Provider != "" {
		if _, known := knownProviders[event.Provider]; !known {
			return fmt.Errorf("unknown provider %q", event.Provider)
		}
	}

	return nil
}
