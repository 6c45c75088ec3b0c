package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/martinsuchenak/migrateplan/internal/analytics"
	"github.com/martinsuchenak/migrateplan/internal/log"
	"github.com/martinsuchenak/migrateplan/internal/metrics"
	"github.com/martinsuchenak/migrateplan/internal/model"
	"github.com/paularlott/logger"
	"github.com/robfig/cron/v3"
)

// SnapshotStorage is what the snapshot scheduler reads and writes.
type SnapshotStorage interface {
	SnapshotOwners(ctx context.Context) ([]string, error)
	ListWorkloads(ctx context.Context, filter *model.WorkloadFilter) ([]model.Workload, error)
	CreateSnapshot(ctx context.Context, s *model.Snapshot) error
}

// Scheduler records an analytics snapshot per user on a cron schedule.
type Scheduler struct {
	mu       sync.Mutex
	running  bool
	cron     *cron.Cron
	pool     *Pool
	storage  SnapshotStorage
	schedule string
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	log      logger.Logger
}

// NewScheduler validates schedule and returns a stopped scheduler.
func NewScheduler(storage SnapshotStorage, schedule string, workers int) (*Scheduler, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("parsing snapshot schedule %q: %w", schedule, err)
	}
	return &Scheduler{
		storage:  storage,
		schedule: schedule,
		workers:  workers,
		log:      log.WithGroup("snapshots"),
	}, nil
}

// Start starts the worker pool and the cron loop
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.pool = NewPool(s.workers)
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, func() { s.RunOnce(s.ctx) }); err != nil {
		s.cancel()
		return fmt.Errorf("scheduling snapshots: %w", err)
	}

	s.pool.Start()
	s.cron.Start()
	s.running = true
	s.log.Info("Scheduler started", "schedule", s.schedule, "workers", s.workers)
	return nil
}

// Stop waits for a running snapshot pass and queued jobs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.log.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
	s.pool.Stop()
	s.cancel()
	s.running = false
}

// RunOnce snapshots every user with data and waits for all jobs. It returns
// the number of snapshots written. Without a started pool the jobs run
// inline.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	owners, err := s.storage.SnapshotOwners(ctx)
	if err != nil {
		s.log.WithError(err).Error("Failed to list snapshot owners")
		metrics.Snapshots.WithLabelValues("error").Inc()
		return 0
	}

	results := make(chan error, len(owners))
	submitted := 0
	for _, userID := range owners {
		job := Job{
			ID:      "snapshot-" + userID,
			Handler: s.snapshotHandler(userID),
			Result:  results,
		}
		if s.pool == nil {
			results <- job.Handler(ctx)
			submitted++
			continue
		}
		if err := s.pool.Submit(job); err != nil {
			s.log.WithError(err).Warn("Snapshot job not submitted", "user_id", userID)
			metrics.Snapshots.WithLabelValues("error").Inc()
			continue
		}
		submitted++
	}

	written := 0
	for i := 0; i < submitted; i++ {
		if err := <-results; err == nil {
			written++
		}
	}
	s.log.Info("Snapshot pass completed", "users", len(owners), "written", written)
	return written
}

func (s *Scheduler) snapshotHandler(userID string) func(context.Context) error {
	return func(ctx context.Context) error {
		snap, err := TakeSnapshot(ctx, s.storage, userID)
		if err != nil {
			s.log.WithError(err).Error("Snapshot failed", "user_id", userID)
			metrics.Snapshots.WithLabelValues("error").Inc()
			return err
		}
		metrics.Snapshots.WithLabelValues("ok").Inc()
		s.log.Debug("Snapshot recorded", "user_id", userID, "id", snap.ID, "workloads", snap.TotalWorkloads)
		return nil
	}
}

// TakeSnapshot summarizes all of userID's workloads and stores the result.
func TakeSnapshot(ctx context.Context, store SnapshotStorage, userID string) (*model.Snapshot, error) {
	workloads, err := store.ListWorkloads(ctx, &model.WorkloadFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("listing workloads: %w", err)
	}
	sum := analytics.Summarize(workloads)
	snap := &model.Snapshot{
		UserID:           userID,
		TotalWorkloads:   sum.TotalWorkloads,
		Completed:        sum.Completed,
		TotalCost:        sum.TotalCost,
		PotentialSavings: analytics.PotentialSavings(workloads),
		ProgressPercent:  analytics.Progress(workloads),
	}
	if err := store.CreateSnapshot(ctx, snap); err != nil {
		return nil, fmt.Errorf("storing snapshot: %w", err)
	}
	return snap, nil
}
