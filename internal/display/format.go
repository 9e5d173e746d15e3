// Package display renders statistics as text tables for the terminal.
package display

import (
	"fmt"
	"strings"
	"time"
)

// NotAvailable is printed where a statistic has no defined value.
const NotAvailable = "N/A"

// Percent formats a nullable percentage, e.g. "52.3%".
func Percent(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f%%", *v)
}

// PercentValue formats a percentage that is always defined.
func PercentValue(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// Turn formats a nullable average finish turn, e.g. "5.4 T".
func Turn(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f T", *v)
}

// Games formats a game count with its first-turn share, e.g. "12 (first: 7)".
func Games(total, first int) string {
	return fmt.Sprintf("%d (first: %d)", total, first)
}

// Date formats a nullable date.
func Date(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}

// Truncate shortens a string to at most n runes, appending "..." when cut.
func Truncate(s string, n int) string {
	if n <= 3 {
		n = 4
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// Rule returns a horizontal separator of the given width.
func Rule(width int) string {
	return strings.Repeat("─", width)
}
