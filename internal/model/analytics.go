package model

// Derived snapshots. Every struct here is computed per request from the
// rows matching the query parameters and discarded after the response is
// rendered; nothing is cached.

type OverviewStats struct {
	TotalCalls      int    `json:"total_calls"`
	Answered        int    `json:"answered"`
	MissedRate      int    `json:"missed_rate"`
	AnswerRate      int    `json:"answer_rate"`
	AvgDuration     string `json:"avg_duration"`
	ActiveAgents    int    `json:"active_agents"`
	Inbound         int    `json:"inbound"`
	InboundPercent  int    `json:"inbound_percent"`
	Outbound        int    `json:"outbound"`
	OutboundPercent int    `json:"outbound_percent"`
	Internal        int    `json:"internal"`
	InternalPercent int    `json:"internal_percent"`
}

type HourlyData struct {
	Hour     string `json:"hour"`
	Inbound  int    `json:"inbound"`
	Internal int    `json:"internal"`
	Outbound int    `json:"outbound"`
}

type ResponseTimePoint struct {
	Time  string `json:"time"`
	Value int    `json:"value"`
}

type AgentStats struct {
	Agent     string `json:"agent"`
	Calls     int    `json:"calls"`
	Answered  int    `json:"answered"`
	AvgTalk   string `json:"avg_talk"`
	TotalTalk string `json:"total_talk"`
}

type PerformanceStats struct {
	TotalCalls  int    `json:"total_calls"`
	AnswerRate  int    `json:"answer_rate"`
	AvgDuration string `json:"avg_duration"`
	TotalTalk   string `json:"total_talk"`
}

type DailyVolume struct {
	Day      string `json:"day"`
	Answered int    `json:"answered"`
	Missed   int    `json:"missed"`
}

type DailyBreakdown struct {
	Day        string `json:"day"`
	Inbound    int    `json:"inbound"`
	Outbound   int    `json:"outbound"`
	Total      int    `json:"total"`
	Answered   int    `json:"answered"`
	Missed     int    `json:"missed"`
	AnswerRate int    `json:"answer_rate"`
}

type EfficiencyMetrics struct {
	AvgRingTime  string `json:"avg_ring_time"`
	LongestCall  string `json:"longest_call"`
	ShortestCall string `json:"shortest_call"`
	MissedCalls  int    `json:"missed_calls"`
}

// HistoryRow is one display-formatted call in the history table; all
// fields are already translated/formatted for the target locale.
type HistoryRow struct {
	Time     string `json:"time"`
	From     string `json:"from"`
	To       string `json:"to"`
	Agent    string `json:"agent"`
	Type     string `json:"type"`
	Duration string `json:"duration"`
	Status   string `json:"status"`
}

type CallHistoryResult struct {
	Records    []HistoryRow `json:"records"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
}

type WeeklyTrend struct {
	Week     string `json:"week"`
	Answered int    `json:"answered"`
	Total    int    `json:"total"`
	Missed   int    `json:"missed"`
}

const (
	TrendUp   = "up"
	TrendDown = "down"
)

type TopAgent struct {
	Agent    string  `json:"agent"`
	Calls    int     `json:"calls"`
	Answered int     `json:"answered"`
	Rate     float64 `json:"rate"`
	Trend    string  `json:"trend"`
}

type PeakHour struct {
	Hour       string  `json:"hour"`
	Calls      int     `json:"calls"`
	Percentage float64 `json:"percentage"`
}

type ResponseTimeSummary struct {
	Seconds float64 `json:"seconds"`
}

type OverviewPage struct {
	Stats         OverviewStats       `json:"stats"`
	Hourly        []HourlyData        `json:"hourly"`
	ResponseTrend []ResponseTimePoint `json:"response_trend"`
	Agents        []AgentStats        `json:"agents"`
}

type PerformancePage struct {
	Stats       PerformanceStats  `json:"stats"`
	DailyVolume []DailyVolume     `json:"daily_volume"`
	Efficiency  EfficiencyMetrics `json:"efficiency"`
	Breakdown   []DailyBreakdown  `json:"breakdown"`
}

type AnalyticsPage struct {
	WeeklyTrend  []WeeklyTrend       `json:"weekly_trend"`
	TopAgents    []TopAgent          `json:"top_agents"`
	PeakHours    []PeakHour          `json:"peak_hours"`
	ResponseTime ResponseTimeSummary `json:"response_time"`
}

type CSVExport struct {
	Filename string `json:"filename"`
	Content  []byte `json:"-"`
}
