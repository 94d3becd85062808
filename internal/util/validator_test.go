package util

import (
	"testing"
	"time"
)

func TestParseDate_Valid(t *testing.T) {
	testCases := []string{
		"2025-06-15",
		"2025-06-15T10:30:00",
		"2025-06-15T10:30:00+02:00",
	}

	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	for _, s := range testCases {
		got, err := ParseDate(s)
		if err != nil {
			t.Errorf("ParseDate(%q) error = %v, want nil", s, err)
			continue
		}
		if got.Year() != want.Year() || got.Month() != want.Month() || got.Day() != want.Day() {
			t.Errorf("ParseDate(%q) = %v, want day %v", s, got, want)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"2025/06/15",
		"15-06-2025",
		"not-a-date",
		"2025-13-01",
		"2025-06-32",
	}

	for _, s := range testCases {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) error = nil, want error", s)
		}
	}
}

func TestIsStrongPassword_Valid(t *testing.T) {
	testCases := []string{"Passw0rd", "Abcdefg1", "XyZ12345"}

	for _, pwd := range testCases {
		if !IsStrongPassword(pwd) {
			t.Errorf("IsStrongPassword(%q) = false, want true", pwd)
		}
	}
}

func TestIsStrongPassword_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"short1A",          // too short
		"alllowercase1",    // no upper
		"ALLUPPERCASE1",    // no lower
		"NoDigitsHere",     // no digit
		"ThisPasswordIsWayTooLongToBeAccepted1", // too long
	}

	for _, pwd := range testCases {
		if IsStrongPassword(pwd) {
			t.Errorf("IsStrongPassword(%q) = true, want false", pwd)
		}
	}
}
