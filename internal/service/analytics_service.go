package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"callcenter-analytics/internal/model"
	"callcenter-analytics/internal/repository"
)

type AnalyticsService struct {
	cdr           *repository.CDRRepository
	log           zerolog.Logger
	defaultPeriod string
	topLimit      int
	pageLimit     int
}

func NewAnalyticsService(cdr *repository.CDRRepository, log zerolog.Logger, defaultPeriod string, topLimit, pageLimit int) *AnalyticsService {
	return &AnalyticsService{
		cdr:           cdr,
		log:           log,
		defaultPeriod: defaultPeriod,
		topLimit:      topLimit,
		pageLimit:     pageLimit,
	}
}

func (s *AnalyticsService) GetOverviewStats(ctx context.Context, period string) (model.OverviewStats, error) {
	records, err := s.fetchPeriod(ctx, period, "", repository.Order(""))
	if err != nil {
		return model.OverviewStats{}, err
	}
	return aggregateOverview(records), nil
}

func (s *AnalyticsService) GetCallsByHour(ctx context.Context, period string) ([]model.HourlyData, error) {
	records, err := s.fetchPeriod(ctx, period, "", repository.Order(""))
	if err != nil {
		return nil, err
	}
	return aggregateHourly(records), nil
}

func (s *AnalyticsService) GetResponseTimeTrend(ctx context.Context, period string) ([]model.ResponseTimePoint, error) {
	rng := s.resolveRange(period)
	records, err := s.cdr.ListRecords(ctx, repository.RecordQuery{
		Range:  &rng,
		Status: model.StatusAnswered,
	})
	if err != nil {
		return nil, err
	}
	return aggregateResponseTrend(records), nil
}

func (s *AnalyticsService) GetAgentStats(ctx context.Context, period string) ([]model.AgentStats, error) {
	records, err := s.fetchPeriod(ctx, period, "", repository.Order(""))
	if err != nil {
		return nil, err
	}
	return aggregateAgents(records), nil
}

// GetOverviewPage assembles everything the overview renders. The widget
// fetches are independent, so they run concurrently and the page either
// completes whole or surfaces the first fetch error.
func (s *AnalyticsService) GetOverviewPage(ctx context.Context, period string) (*model.OverviewPage, error) {
	page := &model.OverviewPage{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.GetOverviewStats(gctx, period)
		page.Stats = stats
		return err
	})
	g.Go(func() error {
		hourly, err := s.GetCallsByHour(gctx, period)
		page.Hourly = hourly
		return err
	})
	g.Go(func() error {
		trend, err := s.GetResponseTimeTrend(gctx, period)
		page.ResponseTrend = trend
		return err
	})
	g.Go(func() error {
		agents, err := s.GetAgentStats(gctx, period)
		page.Agents = agents
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *AnalyticsService) GetPerformanceStats(ctx context.Context, period, agent string) (model.PerformanceStats, error) {
	records, err := s.fetchPeriod(ctx, period, agent, repository.Order(""))
	if err != nil {
		return model.PerformanceStats{}, err
	}
	return aggregatePerformance(records), nil
}

func (s *AnalyticsService) GetDailyVolume(ctx context.Context, period, agent string) ([]model.DailyVolume, error) {
	records, err := s.fetchPeriod(ctx, period, agent, repository.OrderAsc)
	if err != nil {
		return nil, err
	}
	return aggregateDailyVolume(records), nil
}

func (s *AnalyticsService) GetEfficiencyMetrics(ctx context.Context, period, agent string) (model.EfficiencyMetrics, error) {
	records, err := s.fetchPeriod(ctx, period, agent, repository.Order(""))
	if err != nil {
		return model.EfficiencyMetrics{}, err
	}
	return aggregateEfficiency(records), nil
}

func (s *AnalyticsService) GetDailyBreakdown(ctx context.Context, period, agent string) ([]model.DailyBreakdown, error) {
	records, err := s.fetchPeriod(ctx, period, agent, repository.OrderAsc)
	if err != nil {
		return nil, err
	}
	return aggregateDailyBreakdown(records), nil
}

func (s *AnalyticsService) GetPerformancePage(ctx context.Context, period, agent string) (*model.PerformancePage, error) {
	page := &model.PerformancePage{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.GetPerformanceStats(gctx, period, agent)
		page.Stats = stats
		return err
	})
	g.Go(func() error {
		volume, err := s.GetDailyVolume(gctx, period, agent)
		page.DailyVolume = volume
		return err
	})
	g.Go(func() error {
		efficiency, err := s.GetEfficiencyMetrics(gctx, period, agent)
		page.Efficiency = efficiency
		return err
	})
	g.Go(func() error {
		breakdown, err := s.GetDailyBreakdown(gctx, period, agent)
		page.Breakdown = breakdown
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return page, nil
}

// GetCallHistory returns one display-formatted page of matching calls,
// newest first, plus the exact match total for pagination.
func (s *AnalyticsService) GetCallHistory(ctx context.Context, filter model.HistoryFilter) (*model.CallHistoryResult, error) {
	filter = filter.Normalize(s.pageLimit)
	query := s.historyQuery(filter)

	records, total, err := s.cdr.ListPage(ctx, query, filter.Page, filter.Limit)
	if err != nil {
		return nil, err
	}

	result := buildCallHistory(records, total, filter.Page, filter.Limit)
	return &result, nil
}

func (s *AnalyticsService) GetWeeklyTrend(ctx context.Context) ([]model.WeeklyTrend, error) {
	records, err := s.cdr.ListRecords(ctx, repository.RecordQuery{Order: repository.OrderAsc})
	if err != nil {
		return nil, err
	}
	return aggregateWeeklyTrend(records), nil
}

func (s *AnalyticsService) GetTopAgents(ctx context.Context, limit int) ([]model.TopAgent, error) {
	if limit <= 0 {
		limit = s.topLimit
	}
	records, err := s.cdr.ListRecords(ctx, repository.RecordQuery{})
	if err != nil {
		return nil, err
	}
	return aggregateTopAgents(records, limit, time.Now()), nil
}

func (s *AnalyticsService) GetPeakHours(ctx context.Context, limit int) ([]model.PeakHour, error) {
	if limit <= 0 {
		limit = s.topLimit
	}
	records, err := s.cdr.ListRecords(ctx, repository.RecordQuery{})
	if err != nil {
		return nil, err
	}
	return aggregatePeakHours(records, limit), nil
}

func (s *AnalyticsService) GetAverageResponseTime(ctx context.Context) (model.ResponseTimeSummary, error) {
	records, err := s.cdr.ListRecords(ctx, repository.RecordQuery{Status: model.StatusAnswered})
	if err != nil {
		return model.ResponseTimeSummary{}, err
	}
	return aggregateResponseTime(records), nil
}

func (s *AnalyticsService) GetAnalyticsPage(ctx context.Context, limit int) (*model.AnalyticsPage, error) {
	page := &model.AnalyticsPage{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		trend, err := s.GetWeeklyTrend(gctx)
		page.WeeklyTrend = trend
		return err
	})
	g.Go(func() error {
		top, err := s.GetTopAgents(gctx, limit)
		page.TopAgents = top
		return err
	})
	g.Go(func() error {
		peaks, err := s.GetPeakHours(gctx, limit)
		page.PeakHours = peaks
		return err
	})
	g.Go(func() error {
		response, err := s.GetAverageResponseTime(gctx)
		page.ResponseTime = response
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *AnalyticsService) ListAgents(ctx context.Context) ([]string, error) {
	return s.cdr.ListAgents(ctx)
}

func (s *AnalyticsService) ListDates(ctx context.Context) ([]string, error) {
	return s.cdr.ListDates(ctx)
}

func (s *AnalyticsService) fetchPeriod(ctx context.Context, period, agent string, order repository.Order) ([]model.CallRecord, error) {
	rng := s.resolveRange(period)
	query := repository.RecordQuery{Range: &rng, Order: order}
	if agent != "" && agent != model.FilterAll {
		query.Agent = agent
	}
	return s.cdr.ListRecords(ctx, query)
}

// resolveRange applies the configured default when no period was given and
// logs unrecognized tokens before falling back, so caller bugs show up in
// the logs without failing the request.
func (s *AnalyticsService) resolveRange(period string) model.DateRange {
	if period == "" {
		period = s.defaultPeriod
	}
	rng, ok := model.ResolvePeriod(period, time.Now())
	if !ok {
		s.log.Warn().Str("period", period).Msg("unrecognized period token, falling back to today")
	}
	return rng
}

func (s *AnalyticsService) historyQuery(filter model.HistoryFilter) repository.RecordQuery {
	query := repository.RecordQuery{Order: repository.OrderDesc}

	if filter.Date != "" {
		rng := s.resolveRange(filter.Date)
		query.Range = &rng
	}
	if filter.HasAgent() {
		query.Agent = filter.Agent
	}
	if filter.HasType() {
		query.Type = model.CallTypeFromLabel(filter.Type)
	}
	if filter.HasStatus() {
		query.Status = model.StatusFromLabel(filter.Status)
	}

	return query
}
