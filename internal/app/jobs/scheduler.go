package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the background jobs on their cron schedules.
type Scheduler struct {
	cron   *cron.Cron
	jobs   *Jobs
	logger *slog.Logger
}

func NewScheduler(jobs *Jobs, logger *slog.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger))),
		jobs:   jobs,
		logger: logger,
	}
}

// Start registers the expiry job and starts the scheduler. An invalid schedule is returned
// and nothing is started.
func (s *Scheduler) Start(expirySchedule string) error {
	if _, err := s.cron.AddFunc(expirySchedule, s.jobs.ExpireSubscriptions); err != nil {
		s.logger.Error("failed to schedule subscription expiry job", "schedule", expirySchedule, "error", err)
		return err
	}
	s.logger.Info("scheduled subscription expiry job", "schedule", expirySchedule)
	s.cron.Start()
	return nil
}

// Stop halts scheduling; the returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
