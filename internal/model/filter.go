package model

const (
	FilterAll          = "all"
	DefaultHistoryPage = 1
	DefaultHistoryLim  = 10
)

// HistoryFilter carries the optional dimensions of a call-history query.
// Type and Status hold display-locale labels as submitted by the UI; the
// reverse lookup to internal enum values happens when the query is built.
type HistoryFilter struct {
	Date   string
	Agent  string
	Type   string
	Status string
	Page   int
	Limit  int
}

// Normalize fills missing paging fields. A request without a limit gets
// defaultLimit (the configured page size), or DefaultHistoryLim when that
// is unset too.
func (f HistoryFilter) Normalize(defaultLimit int) HistoryFilter {
	if f.Page < 1 {
		f.Page = DefaultHistoryPage
	}
	if f.Limit < 1 {
		f.Limit = defaultLimit
	}
	if f.Limit < 1 {
		f.Limit = DefaultHistoryLim
	}
	return f
}

func (f HistoryFilter) HasAgent() bool {
	return f.Agent != "" && f.Agent != FilterAll
}

func (f HistoryFilter) HasType() bool {
	return f.Type != "" && f.Type != FilterAll
}

func (f HistoryFilter) HasStatus() bool {
	return f.Status != "" && f.Status != FilterAll
}
