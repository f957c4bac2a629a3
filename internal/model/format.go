package model

import "fmt"

// FormatDuration renders seconds as "{m}m {ss}s", e.g. 65 -> "1m 05s".
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "0m 0s"
	}
	return fmt.Sprintf("%dm %02ds", seconds/60, seconds%60)
}

// FormatDurationShort renders seconds as "{m}:{ss}", e.g. 65 -> "1:05".
func FormatDurationShort(seconds int) string {
	if seconds <= 0 {
		return "0:00"
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatHoursMinutes renders seconds as "{h}h {m}m", truncating seconds.
func FormatHoursMinutes(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
}
