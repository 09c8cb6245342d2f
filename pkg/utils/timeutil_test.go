package utils

import (
	"testing"
	"time"
)

func TestWindowStart(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		window string
		want   time.Time
		ok     bool
	}{
		{"day", now.Add(-24 * time.Hour), true},
		{"week", now.AddDate(0, 0, -7), true},
		{"DAY", now.Add(-24 * time.Hour), true},
		{" week ", now.AddDate(0, 0, -7), true},
		{"any", time.Time{}, false},
		{"", time.Time{}, false},
		{"fortnight", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.window, func(t *testing.T) {
			got, ok := WindowStart(tt.window, now)
			if ok != tt.ok {
				t.Fatalf("WindowStart(%q) ok = %v, want %v", tt.window, ok, tt.ok)
			}
			if !got.Equal(tt.want) {
				t.Errorf("WindowStart(%q) = %v, want %v", tt.window, got, tt.want)
			}
		})
	}
}

func TestWindowLabel(t *testing.T) {
	tests := []struct {
		window string
		want   string
	}{
		{"day", "Past 24h"},
		{"week", "Past week"},
		{"any", "Anytime"},
		{"", "Anytime"},
		{"bogus", "Anytime"},
	}

	for _, tt := range tests {
		if got := WindowLabel(tt.window); got != tt.want {
			t.Errorf("WindowLabel(%q) = %q, want %q", tt.window, got, tt.want)
		}
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", now.Add(-30 * time.Second), "just now"},
		{"minutes", now.Add(-35 * time.Minute), "35m ago"},
		{"hours", now.Add(-4 * time.Hour), "4h ago"},
		{"days", now.Add(-48 * time.Hour), "2d ago"},
		{"old falls back to date", now.AddDate(0, -2, 0), "Apr 15, 2025"},
		{"zero time", time.Time{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelativeTime(tt.t, now); got != tt.want {
				t.Errorf("RelativeTime = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		s    string
		n    int
		want string
	}{
		{"shorter than limit", "breaking news", 50, "breaking news"},
		{"exactly at limit", "12345", 5, "12345"},
		{"cut with ellipsis", "a very long description of events", 10, "a very lon..."},
		{"trailing space trimmed before ellipsis", "hello world", 6, "hello..."},
		{"multibyte runes", "日本語のニュース", 3, "日本語..."},
		{"zero limit", "anything", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.s, tt.n); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
			}
		})
	}
}
