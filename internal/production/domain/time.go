package production

import (
	"fmt"
	"time"
)

// DateLayout is the zero-padded ISO calendar date used by records and criteria.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date as UTC midnight.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return parsed, nil
}

// FormatDate renders a time as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
