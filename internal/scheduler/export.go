// Package scheduler runs listing exports on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Job is what the scheduler triggers. It either enqueues an export task or
// runs the export inline when the task queue is disabled.
type Job func(ctx context.Context) error

// ExportScheduler manages periodic listing exports.
type ExportScheduler struct {
	schedule string
	job      Job
	logger   *zap.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	jobCtx     context.Context
	cancelFunc context.CancelFunc
}

// NewExportScheduler creates a scheduler; call Start to activate it.
func NewExportScheduler(schedule string, job Job, logger *zap.Logger) *ExportScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportScheduler{
		schedule: schedule,
		job:      job,
		logger:   logger.Named("scheduler"),
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

// Start registers the export job and starts the cron loop. The scheduler
// stops on its own when ctx is canceled.
func (s *ExportScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	if s.entryID == 0 {
		entryID, err := s.cron.AddFunc(s.schedule, s.runJob)
		if err != nil {
			return fmt.Errorf("failed to schedule export job: %w", err)
		}
		s.entryID = entryID
	}

	s.jobCtx, s.cancelFunc = context.WithCancel(ctx)
	s.cron.Start()
	s.isRunning = true

	next, _ := GetNextRunTime(s.schedule)
	s.logger.Info("export scheduler started",
		zap.String("schedule", s.schedule),
		zap.String("description", GetCronDescription(s.schedule)),
		zap.Timep("next_run", next))

	go func(done <-chan struct{}) {
		<-done
		s.Stop()
	}(s.jobCtx.Done())

	return nil
}

// Stop waits for a running export to finish and halts the cron loop.
func (s *ExportScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	stopped := s.cron.Stop()
	s.cancelFunc()
	s.isRunning = false
	s.cancelFunc = nil
	s.mu.Unlock()

	// A job in flight may need the read lock to finish.
	<-stopped.Done()
	s.logger.Info("export scheduler stopped")
}

// RunNow triggers the export immediately, outside the schedule.
func (s *ExportScheduler) RunNow(ctx context.Context) error {
	return s.job(ctx)
}

func (s *ExportScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next export will occur, or nil when stopped.
func (s *ExportScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *ExportScheduler) runJob() {
	s.mu.RLock()
	ctx := s.jobCtx
	s.mu.RUnlock()
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	if err := s.job(ctx); err != nil {
		s.logger.Error("scheduled export failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled export triggered", zap.Duration("took", time.Since(start)))
}

// ValidateCronSchedule checks a standard five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// GetCronDescription returns a human-readable description of a cron schedule
func GetCronDescription(schedule string) string {
	switch schedule {
	case "0 * * * *":
		return "Every hour at :00"
	case "*/15 * * * *":
		return "Every 15 minutes"
	case "*/30 * * * *":
		return "Every 30 minutes"
	case "0 */6 * * *":
		return "Every 6 hours"
	case "0 0 * * *":
		return "Daily at midnight"
	case "0 0 * * 0":
		return "Weekly on Sunday at midnight"
	default:
		return "Custom schedule: " + schedule
	}
}

// GetNextRunTime calculates when a schedule fires next.
func GetNextRunTime(schedule string) (*time.Time, error) {
	sched, err := cronParser.Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(time.Now())
	return &next, nil
}
