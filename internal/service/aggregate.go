package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"callcenter-analytics/internal/model"
)

// Business hours bound the hourly charts: calls outside 08:00-17:59 are
// dropped from the histogram and the response-time trend.
const (
	firstBusinessHour = 8
	lastBusinessHour  = 17
)

var dayNames = [7]string{"Ned", "Pon", "Tor", "Sre", "Čet", "Pet", "Sob"}

// The aggregators below are pure folds over an already-filtered record
// snapshot. Empty input always yields zero-valued output; every ratio is
// guarded so no metric can come out NaN or infinite.

func aggregateOverview(records []model.CallRecord) model.OverviewStats {
	total := len(records)
	var answered, talkSum int
	var inbound, outbound, internal int
	agents := make(map[string]struct{})

	for _, r := range records {
		if r.Answered() {
			answered++
			talkSum += r.TalkDuration
		}
		switch r.CallType {
		case model.CallTypeInbound:
			inbound++
		case model.CallTypeOutbound:
			outbound++
		case model.CallTypeInternal:
			internal++
		}
		agents[r.Extension] = struct{}{}
	}

	return model.OverviewStats{
		TotalCalls:      total,
		Answered:        answered,
		MissedRate:      percent(total-answered, total),
		AnswerRate:      percent(answered, total),
		AvgDuration:     model.FormatDuration(meanSeconds(talkSum, answered)),
		ActiveAgents:    len(agents),
		Inbound:         inbound,
		InboundPercent:  percent(inbound, total),
		Outbound:        outbound,
		OutboundPercent: percent(outbound, total),
		Internal:        internal,
		InternalPercent: percent(internal, total),
	}
}

// aggregateHourly buckets calls by hour of day into the fixed business-hour
// grid, counted per call type. Always returns exactly one bucket per hour.
func aggregateHourly(records []model.CallRecord) []model.HourlyData {
	buckets := make([]model.HourlyData, 0, lastBusinessHour-firstBusinessHour+1)
	index := make(map[int]int)
	for h := firstBusinessHour; h <= lastBusinessHour; h++ {
		index[h] = len(buckets)
		buckets = append(buckets, model.HourlyData{Hour: fmt.Sprintf("%02d:00", h)})
	}

	for _, r := range records {
		i, ok := index[r.TimeStart.Hour()]
		if !ok {
			continue
		}
		switch r.CallType {
		case model.CallTypeInbound:
			buckets[i].Inbound++
		case model.CallTypeInternal:
			buckets[i].Internal++
		case model.CallTypeOutbound:
			buckets[i].Outbound++
		}
	}

	return buckets
}

// aggregateResponseTrend computes the mean ring time of answered calls per
// business hour. Empty buckets report 0.
func aggregateResponseTrend(records []model.CallRecord) []model.ResponseTimePoint {
	type bucket struct {
		sum   int
		count int
	}
	hours := make(map[int]*bucket)
	for h := firstBusinessHour; h <= lastBusinessHour; h++ {
		hours[h] = &bucket{}
	}

	for _, r := range records {
		if !r.Answered() {
			continue
		}
		b, ok := hours[r.TimeStart.Hour()]
		if !ok {
			continue
		}
		b.sum += r.RingTime()
		b.count++
	}

	points := make([]model.ResponseTimePoint, 0, len(hours))
	for h := firstBusinessHour; h <= lastBusinessHour; h++ {
		b := hours[h]
		points = append(points, model.ResponseTimePoint{
			Time:  fmt.Sprintf("%02d:00", h),
			Value: meanSeconds(b.sum, b.count),
		})
	}
	return points
}

// aggregateAgents rolls records up per extension: call counts, answered
// counts, mean talk per answered call and summed talk time. Sorted by call
// count descending, ties broken by extension ascending.
func aggregateAgents(records []model.CallRecord) []model.AgentStats {
	type rollup struct {
		calls    int
		answered int
		talkSum  int
	}
	agents := make(map[string]*rollup)

	for _, r := range records {
		a, ok := agents[r.Extension]
		if !ok {
			a = &rollup{}
			agents[r.Extension] = a
		}
		a.calls++
		if r.Answered() {
			a.answered++
			a.talkSum += r.TalkDuration
		}
	}

	stats := make([]model.AgentStats, 0, len(agents))
	for ext, a := range agents {
		stats = append(stats, model.AgentStats{
			Agent:     ext,
			Calls:     a.calls,
			Answered:  a.answered,
			AvgTalk:   model.FormatDurationShort(meanSeconds(a.talkSum, a.answered)),
			TotalTalk: model.FormatHoursMinutes(a.talkSum),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Calls != stats[j].Calls {
			return stats[i].Calls > stats[j].Calls
		}
		return stats[i].Agent < stats[j].Agent
	})
	return stats
}

func aggregatePerformance(records []model.CallRecord) model.PerformanceStats {
	total := len(records)
	var answered, talkSum int
	for _, r := range records {
		if r.Answered() {
			answered++
		}
		talkSum += r.TalkDuration
	}

	return model.PerformanceStats{
		TotalCalls:  total,
		AnswerRate:  percent(answered, total),
		AvgDuration: model.FormatDuration(meanSeconds(talkSum, answered)),
		TotalTalk:   model.FormatHoursMinutes(talkSum),
	}
}

func aggregateDailyVolume(records []model.CallRecord) []model.DailyVolume {
	type counts struct {
		answered int
		missed   int
		weekday  time.Weekday
	}
	daily := make(map[string]*counts)

	for _, r := range records {
		key := r.TimeStart.Format("2006-01-02")
		c, ok := daily[key]
		if !ok {
			c = &counts{weekday: r.TimeStart.Weekday()}
			daily[key] = c
		}
		if r.Answered() {
			c.answered++
		} else {
			c.missed++
		}
	}

	volumes := make([]model.DailyVolume, 0, len(daily))
	for _, key := range sortedKeys(daily) {
		c := daily[key]
		volumes = append(volumes, model.DailyVolume{
			Day:      dayNames[c.weekday],
			Answered: c.answered,
			Missed:   c.missed,
		})
	}
	return volumes
}

func aggregateDailyBreakdown(records []model.CallRecord) []model.DailyBreakdown {
	type counts struct {
		inbound  int
		outbound int
		total    int
		answered int
		missed   int
		weekday  time.Weekday
	}
	daily := make(map[string]*counts)

	for _, r := range records {
		key := r.TimeStart.Format("2006-01-02")
		c, ok := daily[key]
		if !ok {
			c = &counts{weekday: r.TimeStart.Weekday()}
			daily[key] = c
		}
		c.total++
		if r.CallType == model.CallTypeInbound {
			c.inbound++
		}
		if r.CallType == model.CallTypeOutbound {
			c.outbound++
		}
		if r.Answered() {
			c.answered++
		} else {
			c.missed++
		}
	}

	breakdown := make([]model.DailyBreakdown, 0, len(daily))
	for _, key := range sortedKeys(daily) {
		c := daily[key]
		breakdown = append(breakdown, model.DailyBreakdown{
			Day:        dayNames[c.weekday],
			Inbound:    c.inbound,
			Outbound:   c.outbound,
			Total:      c.total,
			Answered:   c.answered,
			Missed:     c.missed,
			AnswerRate: percent(c.answered, c.total),
		})
	}
	return breakdown
}

// aggregateEfficiency summarises answered-call timing: mean ring time,
// longest talk, shortest nonzero talk, plus the missed-call count. With no
// answered calls (or none with nonzero talk) the extremes report zero.
func aggregateEfficiency(records []model.CallRecord) model.EfficiencyMetrics {
	var ringSum, answered, missed int
	maxTalk := 0
	minTalk := 0

	for _, r := range records {
		if !r.Answered() {
			missed++
			continue
		}
		answered++
		ringSum += r.RingTime()
		if r.TalkDuration > maxTalk {
			maxTalk = r.TalkDuration
		}
		if r.TalkDuration > 0 && (minTalk == 0 || r.TalkDuration < minTalk) {
			minTalk = r.TalkDuration
		}
	}

	return model.EfficiencyMetrics{
		AvgRingTime:  fmt.Sprintf("%ds", meanSeconds(ringSum, answered)),
		LongestCall:  model.FormatDuration(maxTalk),
		ShortestCall: model.FormatDuration(minTalk),
		MissedCalls:  missed,
	}
}

// aggregateWeeklyTrend groups the whole history into weeks of the month
// (week N covers days 7N-6 through 7N).
func aggregateWeeklyTrend(records []model.CallRecord) []model.WeeklyTrend {
	type counts struct {
		answered int
		total    int
	}
	weeks := make(map[int]*counts)

	for _, r := range records {
		weekNum := (r.TimeStart.Day() + 6) / 7
		c, ok := weeks[weekNum]
		if !ok {
			c = &counts{}
			weeks[weekNum] = c
		}
		c.total++
		if r.Answered() {
			c.answered++
		}
	}

	nums := make([]int, 0, len(weeks))
	for n := range weeks {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	trend := make([]model.WeeklyTrend, 0, len(nums))
	for _, n := range nums {
		c := weeks[n]
		trend = append(trend, model.WeeklyTrend{
			Week:     fmt.Sprintf("Teden %d", n),
			Answered: c.answered,
			Total:    c.total,
			Missed:   c.total - c.answered,
		})
	}
	return trend
}

// aggregateTopAgents ranks agents by all-time answer rate (one decimal).
// The trend compares the trailing seven days against the all-time rate: an
// agent with no recent calls, or a recent rate below their overall rate,
// trends down. Ties break ascending by extension.
func aggregateTopAgents(records []model.CallRecord, limit int, now time.Time) []model.TopAgent {
	type rollup struct {
		total          int
		answered       int
		recentTotal    int
		recentAnswered int
	}
	agents := make(map[string]*rollup)
	recentFrom := now.AddDate(0, 0, -7)

	for _, r := range records {
		a, ok := agents[r.Extension]
		if !ok {
			a = &rollup{}
			agents[r.Extension] = a
		}
		a.total++
		recent := !r.TimeStart.Before(recentFrom)
		if recent {
			a.recentTotal++
		}
		if r.Answered() {
			a.answered++
			if recent {
				a.recentAnswered++
			}
		}
	}

	top := make([]model.TopAgent, 0, len(agents))
	for ext, a := range agents {
		rate := rateOneDecimal(a.answered, a.total)
		trend := model.TrendDown
		if a.recentTotal > 0 && rateOneDecimal(a.recentAnswered, a.recentTotal) >= rate {
			trend = model.TrendUp
		}
		top = append(top, model.TopAgent{
			Agent:    ext,
			Calls:    a.total,
			Answered: a.answered,
			Rate:     rate,
			Trend:    trend,
		})
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].Rate != top[j].Rate {
			return top[i].Rate > top[j].Rate
		}
		return top[i].Agent < top[j].Agent
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top
}

// aggregatePeakHours ranks hours of day by call volume across the whole
// history. Labels follow the 12-hour boundary convention: AM strictly
// below hour 12. Ties break ascending by hour.
func aggregatePeakHours(records []model.CallRecord, limit int) []model.PeakHour {
	counts := make(map[int]int)
	for _, r := range records {
		counts[r.TimeStart.Hour()]++
	}
	total := len(records)

	peaks := make([]model.PeakHour, 0, len(counts))
	hours := make([]int, 0, len(counts))
	for h := range counts {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	for _, h := range hours {
		meridiem := "AM"
		if h >= 12 {
			meridiem = "PM"
		}
		peaks = append(peaks, model.PeakHour{
			Hour:       fmt.Sprintf("%d-%d %s", h, h+1, meridiem),
			Calls:      counts[h],
			Percentage: rateOneDecimal(counts[h], total),
		})
	}

	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].Calls > peaks[j].Calls
	})
	if len(peaks) > limit {
		peaks = peaks[:limit]
	}
	return peaks
}

// aggregateResponseTime is the mean ring time over all answered records,
// rounded to one decimal.
func aggregateResponseTime(records []model.CallRecord) model.ResponseTimeSummary {
	var sum, count int
	for _, r := range records {
		if !r.Answered() {
			continue
		}
		sum += r.RingTime()
		count++
	}
	if count == 0 {
		return model.ResponseTimeSummary{}
	}
	avg := float64(sum) / float64(count)
	return model.ResponseTimeSummary{Seconds: math.Round(avg*10) / 10}
}

// buildCallHistory maps a fetched page to display rows and derives the
// page count from the exact match total.
func buildCallHistory(records []model.CallRecord, total int64, page, limit int) model.CallHistoryResult {
	rows := make([]model.HistoryRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, historyRow(r))
	}

	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return model.CallHistoryResult{
		Records:    rows,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}
}

func historyRow(r model.CallRecord) model.HistoryRow {
	return model.HistoryRow{
		Time:     r.TimeStart.Format("15:04"),
		From:     r.CallerNumber,
		To:       r.CalleeNumber,
		Agent:    r.Extension,
		Type:     model.TranslateCallType(r.CallType),
		Duration: model.FormatDuration(r.TalkDuration),
		Status:   model.TranslateStatus(r.CallStatus),
	}
}

// percent is count/total as a whole percentage, rounded half up, 0 when
// total is 0.
func percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// rateOneDecimal is count/total as a percentage with one decimal place.
func rateOneDecimal(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// meanSeconds is sum/count rounded to the nearest second, 0 when count is 0.
func meanSeconds(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}

func sortedKeys[V any](m map[string]*V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
