package repository

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"clubportal/internal/csvstore"
	"clubportal/internal/model"
)

const logsTable = "logs"

// ActivityLogFilter narrows an activity log query. Zero fields match everything.
type ActivityLogFilter struct {
	Username     string
	ActivityType string
	Since        time.Time
	Limit        int
}

func (f ActivityLogFilter) match(l *model.ActivityLog) bool {
	if f.Username != "" && l.Username != f.Username {
		return false
	}
	if f.ActivityType != "" && l.ActivityType != f.ActivityType {
		return false
	}
	return f.Since.IsZero() || !l.Timestamp.Before(f.Since)
}

// ActivityLogRepository stores audit entries.
type ActivityLogRepository interface {
	CreateBatch(ctx context.Context, logs []model.ActivityLog) error
	// List returns matching entries, newest first.
	List(ctx context.Context, filter ActivityLogFilter) ([]model.ActivityLog, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int, error)
}

type csvActivityLogRepository struct {
	logs  *Table[model.ActivityLog]
	store *csvstore.Store
}

// NewActivityLogRepository keeps entries in the logs CSV table.
func NewActivityLogRepository(store *csvstore.Store) ActivityLogRepository {
	return &csvActivityLogRepository{logs: NewTable[model.ActivityLog](store, logsTable), store: store}
}

func (r *csvActivityLogRepository) CreateBatch(ctx context.Context, logs []model.ActivityLog) error {
	for i := range logs {
		logs[i].ID = 0
		if _, err := r.logs.Insert(ctx, &logs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *csvActivityLogRepository) List(ctx context.Context, filter ActivityLogFilter) ([]model.ActivityLog, error) {
	logs, err := r.logs.Filter(ctx, filter.match)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Timestamp.After(logs[j].Timestamp) })
	if filter.Limit > 0 && len(logs) > filter.Limit {
		logs = logs[:filter.Limit]
	}
	return logs, nil
}

func (r *csvActivityLogRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int, error) {
	return r.store.DeleteBefore(ctx, logsTable, "timestamp", cutoff)
}

type gormActivityLogRepository struct {
	db *gorm.DB
}

// NewGormActivityLogRepository keeps entries in a SQL table.
func NewGormActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &gormActivityLogRepository{db: db}
}

// CreateBatch creates multiple log entries in a single statement.
func (r *gormActivityLogRepository) CreateBatch(ctx context.Context, logs []model.ActivityLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(logs, 100).Error
}

func (r *gormActivityLogRepository) List(ctx context.Context, filter ActivityLogFilter) ([]model.ActivityLog, error) {
	q := r.db.WithContext(ctx).Model(&model.ActivityLog{})
	if filter.Username != "" {
		q = q.Where("username = ?", filter.Username)
	}
	if filter.ActivityType != "" {
		q = q.Where("activity_type = ?", filter.ActivityType)
	}
	if !filter.Since.IsZero() {
		q = q.Where("timestamp >= ?", filter.Since)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var logs []model.ActivityLog
	err := q.Order("timestamp DESC").Find(&logs).Error
	return logs, err
}

func (r *gormActivityLogRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res := r.db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&model.ActivityLog{})
	return int(res.RowsAffected), res.Error
}
