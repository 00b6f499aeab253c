package models

import (
	"fmt"
	"strings"
	"time"
)

// dateFormats are the input layouts accepted from bank exports, tried in
// order. US-style month-first layouts come first since every supported
// institution exports that way.
var dateFormats = []string{
	DateLayout,   // MM/DD/YYYY
	"1/2/2006",   // M/D/YYYY
	"2006-01-02", // ISO
	"01-02-2006",
	"2006/01/02",
	"02.01.2006",
	"Jan 2, 2006",
}

// FormatDate normalizes a raw date string to the canonical MM/DD/YYYY layout.
// An unparseable date is an error so the extraction pipeline can treat it as
// a schema mismatch.
func FormatDate(dateStr string) (string, error) {
	cleanDate := strings.TrimSpace(dateStr)
	if cleanDate == "" {
		return "", fmt.Errorf("empty date")
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, cleanDate); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized date format: %q", dateStr)
}

// ParseDate parses a canonical ledger date.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(DateLayout, dateStr)
}
