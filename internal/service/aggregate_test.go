package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callcenter-analytics/internal/model"
)

func rec(ts time.Time, ext string, callType model.CallType, status model.CallStatus, duration, talk int) model.CallRecord {
	return model.CallRecord{
		TimeStart:    ts,
		CallerNumber: "+386 1 111 111",
		CalleeNumber: "+386 1 222 222",
		Extension:    ext,
		CallType:     callType,
		CallStatus:   status,
		CallDuration: duration,
		TalkDuration: talk,
	}
}

func at(hour int) time.Time {
	return time.Date(2025, time.March, 10, hour, 15, 0, 0, time.Local)
}

func onDay(day, hour int) time.Time {
	return time.Date(2025, time.March, day, hour, 0, 0, 0, time.Local)
}

func TestAggregateOverview(t *testing.T) {
	records := []model.CallRecord{
		rec(at(9), "101", model.CallTypeInbound, model.StatusAnswered, 100, 80),
		rec(at(10), "102", model.CallTypeInbound, model.StatusNoAnswer, 20, 0),
	}

	stats := aggregateOverview(records)

	assert.Equal(t, 2, stats.TotalCalls)
	assert.Equal(t, 1, stats.Answered)
	assert.Equal(t, 50, stats.MissedRate)
	assert.Equal(t, 50, stats.AnswerRate)
	assert.Equal(t, "1m 20s", stats.AvgDuration)
	assert.Equal(t, 2, stats.ActiveAgents)
	assert.Equal(t, 2, stats.Inbound)
	assert.Equal(t, 100, stats.InboundPercent)
	assert.Equal(t, 0, stats.Outbound)
	assert.Equal(t, 0, stats.Internal)
}

func TestAggregateOverviewEmpty(t *testing.T) {
	stats := aggregateOverview(nil)

	assert.Equal(t, 0, stats.TotalCalls)
	assert.Equal(t, 0, stats.MissedRate)
	assert.Equal(t, 0, stats.AnswerRate)
	assert.Equal(t, "0m 0s", stats.AvgDuration)
	assert.Equal(t, 0, stats.ActiveAgents)
}

func TestAggregateOverviewRatesRoughlyComplementary(t *testing.T) {
	records := []model.CallRecord{
		rec(at(9), "101", model.CallTypeInbound, model.StatusAnswered, 60, 50),
		rec(at(9), "101", model.CallTypeInbound, model.StatusAnswered, 60, 50),
		rec(at(10), "102", model.CallTypeOutbound, model.StatusNoAnswer, 15, 0),
	}

	stats := aggregateOverview(records)
	require.LessOrEqual(t, stats.Answered, stats.TotalCalls)
	sum := stats.MissedRate + stats.AnswerRate
	assert.InDelta(t, 100, sum, 1)
}

func TestAggregateHourly(t *testing.T) {
	records := []model.CallRecord{
		rec(at(8), "101", model.CallTypeInbound, model.StatusAnswered, 60, 50),
		rec(at(8), "101", model.CallTypeOutbound, model.StatusAnswered, 60, 50),
		rec(at(17), "102", model.CallTypeInternal, model.StatusNoAnswer, 10, 0),
		rec(at(7), "103", model.CallTypeInbound, model.StatusAnswered, 60, 50),
		rec(at(18), "103", model.CallTypeInbound, model.StatusAnswered, 60, 50),
	}

	buckets := aggregateHourly(records)

	require.Len(t, buckets, 10)
	assert.Equal(t, "08:00", buckets[0].Hour)
	assert.Equal(t, "17:00", buckets[9].Hour)
	assert.Equal(t, 1, buckets[0].Inbound)
	assert.Equal(t, 1, buckets[0].Outbound)
	assert.Equal(t, 1, buckets[9].Internal)

	// Out-of-range calls are dropped: bucket counts sum to in-range records.
	total := 0
	for _, b := range buckets {
		total += b.Inbound + b.Internal + b.Outbound
	}
	assert.Equal(t, 3, total)
}

func TestAggregateHourlyEmpty(t *testing.T) {
	buckets := aggregateHourly(nil)
	require.Len(t, buckets, 10)
	for _, b := range buckets {
		assert.Zero(t, b.Inbound+b.Internal+b.Outbound)
	}
}

func TestAggregateResponseTrend(t *testing.T) {
	records := []model.CallRecord{
		rec(at(9), "101", model.CallTypeInbound, model.StatusAnswered, 100, 90),  // ring 10
		rec(at(9), "102", model.CallTypeInbound, model.StatusAnswered, 100, 85),  // ring 15
		rec(at(9), "103", model.CallTypeInbound, model.StatusNoAnswer, 100, 0),   // ignored
		rec(at(14), "101", model.CallTypeInbound, model.StatusAnswered, 60, 40),  // ring 20
		rec(at(18), "101", model.CallTypeInbound, model.StatusAnswered, 60, 40),  // out of range
	}

	points := aggregateResponseTrend(records)

	require.Len(t, points, 10)
	assert.Equal(t, "09:00", points[1].Time)
	assert.Equal(t, 13, points[1].Value) // mean(10, 15) rounds to 13
	assert.Equal(t, 20, points[6].Value)
	assert.Equal(t, 0, points[0].Value)
}

func TestAggregateAgents(t *testing.T) {
	records := []model.CallRecord{
		rec(at(9), "103", model.CallTypeInbound, model.StatusAnswered, 70, 60),
		rec(at(9), "103", model.CallTypeInbound, model.StatusAnswered, 80, 70),
		rec(at(10), "103", model.CallTypeInbound, model.StatusNoAnswer, 10, 0),
		rec(at(10), "101", model.CallTypeInbound, model.StatusAnswered, 130, 125),
		rec(at(11), "102", model.CallTypeInbound, model.StatusNoAnswer, 10, 0),
	}

	stats := aggregateAgents(records)

	require.Len(t, stats, 3)
	assert.Equal(t, "103", stats[0].Agent)
	assert.Equal(t, 3, stats[0].Calls)
	assert.Equal(t, 2, stats[0].Answered)
	assert.Equal(t, "1:05", stats[0].AvgTalk) // mean(60, 70) = 65
	assert.Equal(t, "0h 2m", stats[0].TotalTalk)

	// Equal call counts tie-break ascending by extension.
	assert.Equal(t, "101", stats[1].Agent)
	assert.Equal(t, "102", stats[2].Agent)
	assert.Equal(t, "0:00", stats[2].AvgTalk)
}

func TestAggregatePerformance(t *testing.T) {
	records := []model.CallRecord{
		rec(at(9), "101", model.CallTypeInbound, model.StatusAnswered, 100, 90),
		rec(at(9), "101", model.CallTypeInbound, model.StatusAnswered, 100, 30),
		rec(at(10), "101", model.CallTypeInbound, model.StatusBusy, 10, 0),
	}

	stats := aggregatePerformance(records)

	assert.Equal(t, 3, stats.TotalCalls)
	assert.Equal(t, 67, stats.AnswerRate)
	assert.Equal(t, "1m 00s", stats.AvgDuration) // 120 talk seconds over 2 answered
	assert.Equal(t, "0h 2m", stats.TotalTalk)
}

func TestAggregateDailyVolume(t *testing.T) {
	records := []model.CallRecord{
		rec(onDay(9, 10), "101", model.CallTypeInbound, model.StatusAnswered, 60, 50),  // Sunday
		rec(onDay(10, 10), "101", model.CallTypeInbound, model.StatusAnswered, 60, 50), // Monday
		rec(onDay(10, 11), "102", model.CallTypeInbound, model.StatusNoAnswer, 10, 0),
	}

	volumes := aggregateDailyVolume(records)

	require.Len(t, volumes, 2)
	assert.Equal(t, "Ned", volumes[0].Day)
	assert.Equal(t, 1, volumes[0].Answered)
	assert.Equal(t, "Pon", volumes[1].Day)
	assert.Equal(t, 1, volumes[1].Answered)
	assert.Equal(t, 1, volumes[1].Missed)
}

func TestAggregateDailyBreakdown(t *testing.T) {
	day := onDay(11, 9) // Tuesday
	records := []model.CallRecord{
		rec(day, "101", model.CallTypeInbound, model.StatusAnswered, 60, 50),
		rec(day, "101", model.CallTypeInbound, model.StatusAnswered, 60, 50),
		rec(day, "102", model.CallTypeOutbound, model.StatusAnswered, 60, 50),
		rec(day, "102", model.CallTypeInternal, model.StatusNoAnswer, 10, 0),
	}

	breakdown := aggregateDailyBreakdown(records)

	require.Len(t, breakdown, 1)
	b := breakdown[0]
	assert.Equal(t, "Tor", b.Day)
	assert.Equal(t, 2, b.Inbound)
	assert.Equal(t, 1, b.Outbound)
	assert.Equal(t, 4, b.Total)
	assert.Equal(t, 3, b.Answered)
	assert.Equal(t, 1, b.Missed)
	assert.Equal(t, 75, b.AnswerRate)
}

func TestAggregateEfficiency(t *testing.T) {
	records := []model.CallRecord{
		rec(at(9), "101", model.CallTypeInbound, model.StatusAnswered, 130, 120), // ring 10
		rec(at(9), "101", model.CallTypeInbound, model.StatusAnswered, 45, 30),   // ring 15
		rec(at(10), "102", model.CallTypeInbound, model.StatusNoAnswer, 20, 0),
		rec(at(10), "102", model.CallTypeInbound, model.StatusBusy, 5, 0),
	}

	metrics := aggregateEfficiency(records)

	assert.Equal(t, "13s", metrics.AvgRingTime) // mean(10, 15) rounds to 13
	assert.Equal(t, "2m 00s", metrics.LongestCall)
	assert.Equal(t, "0m 30s", metrics.ShortestCall)
	assert.Equal(t, 2, metrics.MissedCalls)
}

func TestAggregateEfficiencyNoNonzeroTalk(t *testing.T) {
	records := []model.CallRecord{
		rec(at(9), "101", model.CallTypeInbound, model.StatusAnswered, 12, 0),
	}

	metrics := aggregateEfficiency(records)

	assert.Equal(t, "0m 0s", metrics.ShortestCall)
	assert.Equal(t, "0m 0s", metrics.LongestCall)
	assert.Equal(t, 0, metrics.MissedCalls)
}

func TestAggregateEfficiencyEmpty(t *testing.T) {
	metrics := aggregateEfficiency(nil)

	assert.Equal(t, "0s", metrics.AvgRingTime)
	assert.Equal(t, "0m 0s", metrics.LongestCall)
	assert.Equal(t, "0m 0s", metrics.ShortestCall)
	assert.Equal(t, 0, metrics.MissedCalls)
}

func TestAggregateWeeklyTrend(t *testing.T) {
	records := []model.CallRecord{
		rec(onDay(3, 9), "101", model.CallTypeInbound, model.StatusAnswered, 60, 50),
		rec(onDay(7, 9), "101", model.CallTypeInbound, model.StatusNoAnswer, 10, 0),
		rec(onDay(10, 9), "102", model.CallTypeInbound, model.StatusAnswered, 60, 50),
		rec(onDay(15, 9), "102", model.CallTypeInbound, model.StatusAnswered, 60, 50),
	}

	trend := aggregateWeeklyTrend(records)

	require.Len(t, trend, 3)
	assert.Equal(t, "Teden 1", trend[0].Week)
	assert.Equal(t, 2, trend[0].Total)
	assert.Equal(t, 1, trend[0].Answered)
	assert.Equal(t, 1, trend[0].Missed)
	assert.Equal(t, "Teden 2", trend[1].Week)
	assert.Equal(t, "Teden 3", trend[2].Week)
}

func TestAggregateTopAgents(t *testing.T) {
	now := time.Date(2025, time.March, 20, 12, 0, 0, 0, time.Local)
	old := now.AddDate(0, 0, -20)
	recent := now.AddDate(0, 0, -2)

	records := []model.CallRecord{
		// Agent 101: 3/4 answered all-time, consistent recently -> up.
		rec(recent, "101", model.CallTypeInbound, model.StatusAnswered, 60, 50),
		rec(recent, "101", model.CallTypeInbound, model.StatusAnswered, 60, 50),
		rec(recent, "101", model.CallTypeInbound, model.StatusAnswered, 60, 50),
		rec(recent, "101", model.CallTypeInbound, model.StatusNoAnswer, 10, 0),
		// Agent 102: 2/3 answered all-time, but only a recent miss -> down.
		rec(old, "102", model.CallTypeInbound, model.StatusAnswered, 60, 50),
		rec(old, "102", model.CallTypeInbound, model.StatusAnswered, 60, 50),
		rec(recent, "102", model.CallTypeInbound, model.StatusNoAnswer, 10, 0),
		// Agent 103: 1/1, no recent calls -> down.
		rec(old, "103", model.CallTypeInbound, model.StatusAnswered, 60, 50),
	}

	top := aggregateTopAgents(records, 5, now)

	require.Len(t, top, 3)
	assert.Equal(t, "103", top[0].Agent)
	assert.Equal(t, 100.0, top[0].Rate)
	assert.Equal(t, model.TrendDown, top[0].Trend)

	assert.Equal(t, "101", top[1].Agent)
	assert.Equal(t, 75.0, top[1].Rate)
	assert.Equal(t, model.TrendUp, top[1].Trend)

	assert.Equal(t, "102", top[2].Agent)
	assert.Equal(t, 66.7, top[2].Rate)
	assert.Equal(t, model.TrendDown, top[2].Trend)
}

func TestAggregateTopAgentsLimitAndTies(t *testing.T) {
	now := time.Now()
	records := []model.CallRecord{
		rec(now, "202", model.CallTypeInbound, model.StatusAnswered, 60, 50),
		rec(now, "201", model.CallTypeInbound, model.StatusAnswered, 60, 50),
		rec(now, "203", model.CallTypeInbound, model.StatusAnswered, 60, 50),
	}

	top := aggregateTopAgents(records, 2, now)

	// Equal rates tie-break ascending by extension, then the limit applies.
	require.Len(t, top, 2)
	assert.Equal(t, "201", top[0].Agent)
	assert.Equal(t, "202", top[1].Agent)
}

func TestAggregatePeakHours(t *testing.T) {
	records := []model.CallRecord{
		rec(at(9), "101", model.CallTypeInbound, model.StatusAnswered, 60, 50),
		rec(at(9), "101", model.CallTypeInbound, model.StatusAnswered, 60, 50),
		rec(at(9), "102", model.CallTypeInbound, model.StatusNoAnswer, 10, 0),
		rec(at(14), "102", model.CallTypeInbound, model.StatusAnswered, 60, 50),
	}

	peaks := aggregatePeakHours(records, 5)

	require.Len(t, peaks, 2)
	assert.Equal(t, "9-10 AM", peaks[0].Hour)
	assert.Equal(t, 3, peaks[0].Calls)
	assert.Equal(t, 75.0, peaks[0].Percentage)
	assert.Equal(t, "14-15 PM", peaks[1].Hour)
	assert.Equal(t, 25.0, peaks[1].Percentage)
}

func TestAggregatePeakHoursBoundaryAndLimit(t *testing.T) {
	records := []model.CallRecord{
		rec(at(11), "101", model.CallTypeInbound, model.StatusAnswered, 60, 50),
		rec(at(12), "101", model.CallTypeInbound, model.StatusAnswered, 60, 50),
		rec(at(12), "102", model.CallTypeInbound, model.StatusAnswered, 60, 50),
	}

	peaks := aggregatePeakHours(records, 1)

	require.Len(t, peaks, 1)
	// Hour 12 is PM by the 12-hour boundary convention.
	assert.Equal(t, "12-13 PM", peaks[0].Hour)
}

func TestAggregateResponseTime(t *testing.T) {
	records := []model.CallRecord{
		rec(at(9), "101", model.CallTypeInbound, model.StatusAnswered, 100, 90), // ring 10
		rec(at(9), "102", model.CallTypeInbound, model.StatusAnswered, 100, 85), // ring 15
	}

	summary := aggregateResponseTime(records)
	assert.Equal(t, 12.5, summary.Seconds)
}

func TestAggregateResponseTimeEmpty(t *testing.T) {
	summary := aggregateResponseTime(nil)
	assert.Zero(t, summary.Seconds)
}

func TestBuildCallHistory(t *testing.T) {
	records := []model.CallRecord{
		rec(time.Date(2025, time.March, 10, 10, 45, 0, 0, time.Local), "101", model.CallTypeInbound, model.StatusAnswered, 210, 204),
	}

	result := buildCallHistory(records, 25, 3, 10)

	assert.Equal(t, int64(25), result.Total)
	assert.Equal(t, 3, result.Page)
	assert.Equal(t, 3, result.TotalPages)

	require.Len(t, result.Records, 1)
	row := result.Records[0]
	assert.Equal(t, "10:45", row.Time)
	assert.Equal(t, "101", row.Agent)
	assert.Equal(t, "Dohodni", row.Type)
	assert.Equal(t, "3m 24s", row.Duration)
	assert.Equal(t, "ODGOVORJEN", row.Status)
}

func TestBuildCallHistoryEmpty(t *testing.T) {
	result := buildCallHistory(nil, 0, 1, 10)

	assert.Empty(t, result.Records)
	assert.Zero(t, result.Total)
	assert.Zero(t, result.TotalPages)
}
