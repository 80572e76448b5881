package domain

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidDate is returned when free-form text contains no parseable date.
var ErrInvalidDate = errors.New("invalid date")

// Day and month are one or two digits separated by a dot; the four-digit year
// is optional. Whitespace may follow each dot.
var datePattern = regexp.MustCompile(`(\d{1,2})\.\s*(\d{1,2})(?:\.\s*(\d{4}))?`)

// ParseDate extracts a calendar date like "22.04.1997" or "1.2" from
// free-form text. A missing year defaults to the current one. The result is
// midnight of the parsed day in local time. Calendar-invalid combinations
// (e.g. 31.04) fail with ErrInvalidDate.
func ParseDate(s string) (time.Time, error) {
	m := datePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, ErrInvalidDate
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year := time.Now().Year()
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes out-of-range values; reject anything that moved.
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}
