// Package scheduler provides unified scheduler management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/leaders-st/helpdesk/internal/shared/logger"
)

// ScanJob runs one SLA pass over the unresolved tickets.
type ScanJob interface {
	Execute(ctx context.Context) error
}

// ScanJobFunc adapts a plain function to ScanJob.
type ScanJobFunc func(ctx context.Context) error

func (f ScanJobFunc) Execute(ctx context.Context) error { return f(ctx) }

// SchedulerManager manages all scheduled jobs using gocron v2.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterSLAJobs registers the periodic SLA scan. Singleton mode guarantees
// a slow scan is never overlapped by the next tick; the per-run timeout is
// the scan period itself.
func (m *SchedulerManager) RegisterSLAJobs(scanJob ScanJob, period time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(period),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), period)
			defer cancel()
			m.runScan(ctx, scanJob)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("sla", "scan"),
		gocron.WithName("sla-scan"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered SLA scan job", "period", period)
	return nil
}

func (m *SchedulerManager) runScan(ctx context.Context, scanJob ScanJob) {
	m.logger.Debugw("SLA scan started")
	start := time.Now()

	if err := scanJob.Execute(ctx); err != nil {
		m.logger.Errorw("SLA scan failed",
			"error", err,
			"duration", time.Since(start),
		)
		return
	}

	m.logger.Debugw("SLA scan completed", "duration", time.Since(start))
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}
