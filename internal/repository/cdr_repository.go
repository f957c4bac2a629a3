package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"callcenter-analytics/internal/model"
)

type Order string

const (
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

// RecordQuery describes one filtered fetch against cdr_records. A nil
// Range means no time bound (whole history); empty Agent/Type/Status mean
// no equality filter on that dimension.
type RecordQuery struct {
	Range  *model.DateRange
	Agent  string
	Type   model.CallType
	Status model.CallStatus
	Order  Order
}

type CDRRepository struct {
	db *gorm.DB
}

func NewCDRRepository(db *gorm.DB) *CDRRepository {
	return &CDRRepository{db: db}
}

// ListRecords fetches every row matching the query. Errors from the
// datastore propagate unchanged; callers treat them as fetch failures.
func (r *CDRRepository) ListRecords(ctx context.Context, q RecordQuery) ([]model.CallRecord, error) {
	var records []model.CallRecord
	query := r.applyQuery(ctx, q)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListPage fetches one page of matching rows plus the exact total count,
// so callers can derive total pages independently of the page contents.
func (r *CDRRepository) ListPage(ctx context.Context, q RecordQuery, page, limit int) ([]model.CallRecord, int64, error) {
	var total int64
	if err := r.applyQuery(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var records []model.CallRecord
	query := r.applyQuery(ctx, q).Offset(offset).Limit(limit)
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *CDRRepository) ListAgents(ctx context.Context) ([]string, error) {
	var agents []string
	err := r.db.WithContext(ctx).
		Model(&model.CallRecord{}).
		Distinct("extension").
		Order("extension ASC").
		Pluck("extension", &agents).Error
	if err != nil {
		return nil, err
	}
	return agents, nil
}

// ListDates returns the distinct calendar dates that have at least one
// record, formatted YYYY-MM-DD ascending. Feeds the date picker.
func (r *CDRRepository) ListDates(ctx context.Context) ([]string, error) {
	var stamps []time.Time
	err := r.db.WithContext(ctx).
		Model(&model.CallRecord{}).
		Distinct("DATE(time_start) AS day").
		Order("day ASC").
		Pluck("day", &stamps).Error
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(stamps))
	for _, stamp := range stamps {
		dates = append(dates, stamp.Format("2006-01-02"))
	}
	return dates, nil
}

func (r *CDRRepository) applyQuery(ctx context.Context, q RecordQuery) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.CallRecord{})

	if q.Range != nil {
		query = query.Where("time_start BETWEEN ? AND ?", q.Range.From, q.Range.To)
	}
	if q.Agent != "" {
		query = query.Where("extension = ?", q.Agent)
	}
	if q.Type != "" {
		query = query.Where("call_type = ?", q.Type)
	}
	if q.Status != "" {
		query = query.Where("call_status = ?", q.Status)
	}

	switch q.Order {
	case OrderDesc:
		query = query.Order("time_start DESC")
	case OrderAsc:
		query = query.Order("time_start ASC")
	}

	return query
}
