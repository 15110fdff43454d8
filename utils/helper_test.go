package utils

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name     string
		from     time.Time
		to       time.Time
		expected int
	}{
		{"same day", base, base.Add(23 * time.Hour), 0},
		{"exactly three days", base, base.AddDate(0, 0, 3), 3},
		{"hours ignored", base.Add(22 * time.Hour), base.AddDate(0, 0, 3).Add(1 * time.Hour), 3},
		{"to before from", base, base.AddDate(0, 0, -2), -2},
		{"across month boundary", time.Date(2026, 1, 30, 12, 0, 0, 0, time.UTC), time.Date(2026, 2, 2, 1, 0, 0, 0, time.UTC), 3},
	}
	for _, tc := range cases {
		if got := DaysBetween(tc.from, tc.to); got != tc.expected {
			t.Fatalf("%s: DaysBetween expected %d, got %d", tc.name, tc.expected, got)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@example.com"}
	invalid := []string{"", "plain", "@example.com", "user@", "user@host"}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Fatalf("expected %q to be valid", e)
		}
	}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Fatalf("expected %q to be invalid", e)
		}
	}
}
