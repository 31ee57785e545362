// Package activity records who did what to the data directory.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"clubportal/internal/csvstore"
	"clubportal/internal/model"
	"clubportal/internal/repository"
)

// Action results.
const (
	ResultSuccess = "SUCCESS"
	ResultFailure = "FAILURE"
)

const (
	queueSize     = 100
	batchSize     = 10
	flushInterval = time.Second
	// DefaultRetentionDays is how long Cleanup keeps entries by default.
	DefaultRetentionDays = 30
)

// Logger writes activity entries through a background worker. It implements
// csvstore.Sink so every store mutation is recorded.
type Logger struct {
	repo   repository.ActivityLogRepository
	logger *slog.Logger
	now    func() time.Time

	mu     sync.RWMutex
	closed bool
	ch     chan model.ActivityLog
	done   chan struct{}
}

var _ csvstore.Sink = (*Logger)(nil)

// NewLogger starts the worker. Close must be called to flush pending entries.
func NewLogger(repo repository.ActivityLogRepository, logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Logger{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		ch:     make(chan model.ActivityLog, queueSize),
		done:   make(chan struct{}),
	}
	go l.worker(context.Background())
	return l
}

// Record implements csvstore.Sink.
func (l *Logger) Record(ctx context.Context, ev csvstore.Event) {
	entry := model.ActivityLog{
		Timestamp:       ev.Time,
		Username:        ev.Actor,
		ActivityType:    "DATA_" + string(ev.Operation),
		Description:     fmt.Sprintf("%s %s", ev.Operation, ev.Table),
		TargetResource:  ev.Table,
		ActionResult:    ResultSuccess,
		RecordsAffected: ev.Affected,
	}
	if ev.RecordID > 0 {
		entry.TargetResource = fmt.Sprintf("%s#%d", ev.Table, ev.RecordID)
	}
	if ev.Err != nil {
		entry.ActionResult = ResultFailure
		entry.ErrorMessage = ev.Err.Error()
	}
	l.enqueue(ctx, entry)
}

// Log records a user action such as a login. err marks the action failed.
func (l *Logger) Log(ctx context.Context, username, activityType, description, target string, err error) {
	entry := model.ActivityLog{
		Username:       username,
		ActivityType:   activityType,
		Description:    description,
		TargetResource: target,
		ActionResult:   ResultSuccess,
	}
	if err != nil {
		entry.ActionResult = ResultFailure
		entry.ErrorMessage = err.Error()
	}
	l.enqueue(ctx, entry)
}

func (l *Logger) enqueue(ctx context.Context, entry model.ActivityLog) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.now()
	}
	if entry.Username == "" {
		entry.Username = csvstore.ActorFrom(ctx)
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return
	}

	// Send to async channel (non-blocking)
	select {
	case l.ch <- entry:
	default:
		// Channel full, write synchronously as fallback
		l.write(context.WithoutCancel(ctx), []model.ActivityLog{entry})
	}
}

func (l *Logger) write(ctx context.Context, batch []model.ActivityLog) {
	if err := l.repo.CreateBatch(ctx, batch); err != nil {
		l.logger.Warn("write activity log", slog.Int("entries", len(batch)), slog.Any("err", err))
	}
}

// worker processes entries asynchronously.
func (l *Logger) worker(ctx context.Context) {
	defer close(l.done)
	batch := make([]model.ActivityLog, 0, batchSize)
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case entry, ok := <-l.ch:
			if !ok {
				// Channel closed, flush remaining entries
				if len(batch) > 0 {
					l.write(ctx, batch)
				}
				return
			}
			batch = append(batch, entry)
			if len(batch) >= batchSize {
				l.write(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				l.write(ctx, batch)
				batch = batch[:0]
			}
		}
	}
}

// Close stops the worker after writing everything queued.
func (l *Logger) Close() {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.ch)
	}
	l.mu.Unlock()
	<-l.done
}

// Query returns entries matching filter, newest first.
func (l *Logger) Query(ctx context.Context, filter repository.ActivityLogFilter) ([]model.ActivityLog, error) {
	return l.repo.List(ctx, filter)
}

// Cleanup removes entries older than daysToKeep days.
func (l *Logger) Cleanup(ctx context.Context, daysToKeep int) (int, error) {
	if daysToKeep <= 0 {
		daysToKeep = DefaultRetentionDays
	}
	return l.repo.DeleteBefore(ctx, l.now().AddDate(0, 0, -daysToKeep))
}
