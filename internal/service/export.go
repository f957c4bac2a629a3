package service

import (
	"bytes"
	"context"
	"encoding/csv"

	"callcenter-analytics/internal/model"
)

var exportHeader = []string{"Čas", "Od", "Za", "Agent", "Tip", "Trajanje", "Status"}

// ExportCallHistory serializes every record matching the filter (ignoring
// pagination) as CSV, formatted exactly like the history table.
func (s *AnalyticsService) ExportCallHistory(ctx context.Context, filter model.HistoryFilter) (*model.CSVExport, error) {
	query := s.historyQuery(filter)

	records, err := s.cdr.ListRecords(ctx, query)
	if err != nil {
		return nil, err
	}

	content, err := encodeHistoryCSV(records)
	if err != nil {
		return nil, err
	}

	return &model.CSVExport{
		Filename: exportFilename(filter.Date),
		Content:  content,
	}, nil
}

// encodeHistoryCSV writes display-formatted rows under a header row. Zero
// records still produce the header.
func encodeHistoryCSV(records []model.CallRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := historyRow(r)
		if err := w.Write([]string{row.Time, row.From, row.To, row.Agent, row.Type, row.Duration, row.Status}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportFilename(date string) string {
	if date == "" {
		date = "all"
	}
	return "calls_" + date + ".csv"
}
