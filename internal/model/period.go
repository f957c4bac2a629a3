package model

import (
	"regexp"
	"time"
)

type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

const (
	PeriodToday      = "today"
	PeriodYesterday  = "yesterday"
	PeriodLast7Days  = "last7days"
	PeriodLast30Days = "last30days"
)

var literalDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ResolvePeriod maps a period token to a closed [from, to] interval in the
// local clock of now. A literal YYYY-MM-DD token selects that calendar day;
// the named tokens select the current day, the previous day, or a rolling
// window ending at now. The second return value reports whether the token
// was recognized; unrecognized tokens fall back to today's interval so a
// bad token degrades to the default view instead of failing the request.
func ResolvePeriod(token string, now time.Time) (DateRange, bool) {
	if literalDatePattern.MatchString(token) {
		if day, err := time.ParseInLocation("2006-01-02", token, now.Location()); err == nil {
			return dayRange(day), true
		}
	}

	switch token {
	case PeriodToday, "":
		return dayRange(now), true
	case PeriodYesterday:
		return dayRange(now.AddDate(0, 0, -1)), true
	case PeriodLast7Days:
		return DateRange{From: now.AddDate(0, 0, -7), To: now}, true
	case PeriodLast30Days:
		return DateRange{From: now.AddDate(0, 0, -30), To: now}, true
	}

	return dayRange(now), false
}

func dayRange(day time.Time) DateRange {
	y, m, d := day.Date()
	loc := day.Location()
	// Build both bounds from calendar components so DST transition days
	// (23 or 25 hours long) still end at 23:59:59 of the same day.
	return DateRange{
		From: time.Date(y, m, d, 0, 0, 0, 0, loc),
		To:   time.Date(y, m, d, 23, 59, 59, 0, loc),
	}
}
