package jobs

import (
	"context"
	"fmt"
	"time"

	"easyrent-backend/internal/config"
	"easyrent-backend/internal/logger"
	"easyrent-backend/internal/metrics"
	"easyrent-backend/internal/repository"
	"easyrent-backend/internal/service"
	"easyrent-backend/internal/storage"
)

// Job names, as accepted by cmd/cronjob -run-once and used as metric labels.
const (
	JobNormalizeCarImages  = "normalize-car-images"
	JobSweepOrphanUploads  = "sweep-orphan-uploads"
	JobSendPickupReminders = "send-pickup-reminders"
)

// UploadStore is the part of disk storage the image jobs need.
type UploadStore interface {
	List(ctx context.Context) ([]storage.FileInfo, error)
	Delete(ctx context.Context, key string) error
	KeyFromPublicPath(p string) (string, bool)
}

// Dependencies holds everything the jobs touch. Uploads is nil when images
// are stored inline.
type Dependencies struct {
	Cars    repository.CarRepository
	Rentals repository.RentalRepository
	Uploads UploadStore
	Email   service.EmailService
	Metrics *metrics.Metrics
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	deps     Dependencies
	schedule config.SchedulerConfig
	timeout  time.Duration
	now      func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(deps Dependencies, cfg *config.Config) *JobRunner {
	return &JobRunner{
		deps:     deps,
		schedule: cfg.Scheduler,
		timeout:  10 * time.Minute,
		now:      time.Now,
	}
}

// Schedule returns the cron specs the jobs are registered with.
func (jr *JobRunner) Schedule() config.SchedulerConfig {
	return jr.schedule
}

// Run executes a job by name. "all" runs every job in order.
func (jr *JobRunner) Run(name string) error {
	switch name {
	case JobNormalizeCarImages:
		return jr.NormalizeCarImages()
	case JobSweepOrphanUploads:
		return jr.SweepOrphanUploads()
	case JobSendPickupReminders:
		return jr.SendPickupReminders()
	case "all":
		return jr.RunAll()
	default:
		return fmt.Errorf("unknown job %q", name)
	}
}

// RunAll runs every job once (for manual execution). Normalization runs
// before the sweep so that cleared references free their files.
func (jr *JobRunner) RunAll() error {
	var firstErr error
	for _, job := range []func() error{jr.NormalizeCarImages, jr.SweepOrphanUploads, jr.SendPickupReminders} {
		if err := job(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// runWithRecovery wraps job execution with panic recovery, logging and metrics
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
			err = fmt.Errorf("job %s panicked: %v", jobName, r)
		}
		jr.deps.Metrics.ObserveJob(jobName, err, time.Since(start))
	}()

	logger.Info("Starting job", "job", jobName)
	if err = jobFunc(ctx); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err, "duration_ms", time.Since(start).Milliseconds())
		return err
	}
	logger.Info("Job completed", "job", jobName, "duration_ms", time.Since(start).Milliseconds())
	return nil
}
