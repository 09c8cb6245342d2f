// Package utils provides common utility functions for NewsPulse.
package utils

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Publication window names accepted by WindowStart.
const (
	WindowAny  = "any"
	WindowDay  = "day"
	WindowWeek = "week"
)

// WindowStart returns the earliest publication time covered by the named
// window, relative to now. The second return is false when the window is
// "any", empty, or unrecognized, meaning no lower bound applies.
func WindowStart(window string, now time.Time) (time.Time, bool) {
	switch strings.ToLower(strings.TrimSpace(window)) {
	case WindowDay:
		return now.Add(-24 * time.Hour), true
	case WindowWeek:
		return now.AddDate(0, 0, -7), true
	default:
		return time.Time{}, false
	}
}

// WindowLabel returns the display label for a window name, matching the
// choices offered in the dashboard.
func WindowLabel(window string) string {
	switch strings.ToLower(strings.TrimSpace(window)) {
	case WindowDay:
		return "Past 24h"
	case WindowWeek:
		return "Past week"
	default:
		return "Anytime"
	}
}

// RelativeTime renders t as a short human-readable age relative to now,
// e.g. "just now", "35m ago", "4h ago", "2d ago". Times older than a week
// (or zero times) fall back to an absolute date.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return formatAge(int(d.Minutes()), "m")
	case d < 24*time.Hour:
		return formatAge(int(d.Hours()), "h")
	case d < 7*24*time.Hour:
		return formatAge(int(d.Hours()/24), "d")
	default:
		return t.Format("Jan 2, 2006")
	}
}

func formatAge(n int, unit string) string {
	if n < 1 {
		n = 1
	}
	return strconv.Itoa(n) + unit + " ago"
}

// Truncate shortens s to at most n runes, appending an ellipsis when text
// was cut. Used for article descriptions in listings and reports.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "..."
}
