package dates

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the date format persisted in every table.
const Layout = "2006-01-02"

// Today returns the current date in table form.
func Today() string {
	return time.Now().Format(Layout)
}

// Normalize validates an optional caller-supplied date, defaulting to today
// when blank.
func Normalize(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Today(), nil
	}
	parsed, err := time.Parse(Layout, trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", trimmed)
	}
	return parsed.Format(Layout), nil
}
