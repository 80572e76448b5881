package domain

import (
	"testing"
	"time"
)

func mustParse(t *testing.T, input string) time.Time {
	t.Helper()
	date, err := ParseDate(input)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", input, err)
	}
	return date
}

func TestParseDate_Full(t *testing.T) {
	date := mustParse(t, "22.04.1997")
	if date.Year() != 1997 || date.Month() != time.April || date.Day() != 22 {
		t.Fatalf("wrong date: %v", date)
	}
	if date.Hour() != 0 || date.Minute() != 0 || date.Second() != 0 {
		t.Fatalf("time not midnight: %v", date)
	}
}

func TestParseDate_DefaultYear(t *testing.T) {
	date := mustParse(t, "1.02")
	if date.Year() != time.Now().Year() {
		t.Fatalf("expected current year, got %d", date.Year())
	}
	if date.Month() != time.February || date.Day() != 1 {
		t.Fatalf("wrong date: %v", date)
	}
}

func TestParseDate_InternalWhitespace(t *testing.T) {
	date := mustParse(t, "01. 2")
	if date.Month() != time.February || date.Day() != 1 {
		t.Fatalf("wrong date: %v", date)
	}
}

func TestParseDate_SurroundingText(t *testing.T) {
	date := mustParse(t, "  22.04.1997  ")
	if date.Day() != 22 {
		t.Fatalf("wrong date: %v", date)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{
		"",
		"hello",
		"13.13.2020",
		"31.04.2020",
		"0.1.2020",
	} {
		if _, err := ParseDate(input); err == nil {
			t.Fatalf("ParseDate(%q): expected error", input)
		}
	}
}

func TestMeetingKeyRoundTrip(t *testing.T) {
	m := NewMeeting(time.Date(1997, time.April, 22, 15, 4, 5, 0, time.Local))
	if got := MeetingFromTimestamp(m.Key()).Key(); got != m.Key() {
		t.Fatalf("key did not round-trip: %d != %d", got, m.Key())
	}
	if m.Date.Hour() != 0 {
		t.Fatalf("meeting date not midnight: %v", m.Date)
	}
}
