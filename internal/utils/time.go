package utils

import (
	"fmt"
	"time"

	"github.com/haeunlee/ofter/internal/constants"
)

// FormatDuration renders a duration in whole seconds as a compact
// human-readable string, e.g. "45s", "12m 05s", "2h 31m".
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}

	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// DateOfMillis returns the local calendar date (YYYY-MM-DD) of a Unix
// millisecond timestamp.
func DateOfMillis(ms int64) string {
	return time.UnixMilli(ms).Format(constants.DateFormat)
}

// ClockOfMillis returns the local wall-clock time (HH:MM) of a Unix
// millisecond timestamp.
func ClockOfMillis(ms int64) string {
	return time.UnixMilli(ms).Format("15:04")
}

// ElapsedSeconds returns the whole seconds elapsed between a Unix
// millisecond timestamp and now, truncated toward zero.
func ElapsedSeconds(startMs int64, now time.Time) int64 {
	return (now.UnixMilli() - startMs) / 1000
}
