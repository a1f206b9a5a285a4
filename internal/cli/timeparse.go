package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
)

// parseInstant accepts RFC 3339, "YYYY-MM-DD HH:MM" or "YYYY-MM-DDTHH:MM"
// in the display zone, or a bare "YYYY-MM-DD" meaning midnight.
func parseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	datePart, clockPart, hasClock := strings.Cut(strings.Replace(s, "T", " ", 1), " ")
	date, err := domain.ParseDate(datePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (use RFC 3339 or YYYY-MM-DD HH:MM)", s)
	}
	var clock domain.Clock
	if hasClock {
		clock, err = domain.ParseClock(clockPart)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid time %q (use RFC 3339 or YYYY-MM-DD HH:MM)", s)
		}
	}
	return date.At(clock, formatter.Location), nil
}

// parseOptionalInstant returns nil for an empty string.
func parseOptionalInstant(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseInstant(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
