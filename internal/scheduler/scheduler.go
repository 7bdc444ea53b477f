package scheduler

import (
	"fmt"
	"time"

	"easyrent-backend/internal/jobs"
	"easyrent-backend/internal/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner. It
// fails when a configured cron spec does not parse.
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Schedule()

	entries := []struct {
		name string
		spec string
		run  func() error
	}{
		{jobs.JobNormalizeCarImages, cfg.NormalizeCarImages, s.jobs.NormalizeCarImages},
		{jobs.JobSweepOrphanUploads, cfg.SweepOrphanUploads, s.jobs.SweepOrphanUploads},
		{jobs.JobSendPickupReminders, cfg.SendPickupReminders, s.jobs.SendPickupReminders},
	}

	for _, e := range entries {
		run := e.run
		// errors are logged and counted by the job runner
		if _, err := s.cron.AddFunc(e.spec, func() { _ = run() }); err != nil {
			logger.Error("Failed to register job", "job", e.name, "spec", e.spec, "error", err)
			return fmt.Errorf("invalid schedule %q for %s: %w", e.spec, e.name, err)
		}
		logger.Debug("Registered job", "job", e.name, "spec", e.spec)
	}

	logger.Info("All cron jobs registered successfully", "count", len(entries))
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler, waiting for running jobs
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// Entries returns the registered jobs with their next run times
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}
