package jobs

import (
	"context"
	"fmt"
	"time"

	"crm_legal_go/config"
	"crm_legal_go/logger"

	"github.com/robfig/cron/v3"
)

// cronLogger adapts logger.Logger to cron.Logger
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

// Scheduler runs the reminder job on the configured cron specs
type Scheduler struct {
	cron *cron.Cron
	log  *logger.Logger
}

// NewScheduler registers the reminder and inactivity checks. Overlapping runs
// are skipped.
func NewScheduler(cfg *config.Config, job *ReminderJob, log *logger.Logger) (*Scheduler, error) {
	cl := cronLogger{log: log}
	c := cron.New(
		cron.WithLocation(time.Local),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	if _, err := c.AddFunc(cfg.ReminderSchedule, func() {
		if err := job.RunReminders(context.Background()); err != nil {
			log.Error("reminder run failed", "error", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("invalid REMINDER_SCHEDULE %q: %w", cfg.ReminderSchedule, err)
	}

	if _, err := c.AddFunc(cfg.InactivityCheckSchedule, func() {
		if err := job.RunInactivityCheck(context.Background()); err != nil {
			log.Error("inactivity check failed", "error", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("invalid INACTIVITY_CHECK_SCHEDULE %q: %w", cfg.InactivityCheckSchedule, err)
	}

	return &Scheduler{cron: c, log: log}, nil
}

// Start begins running jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop halts the scheduler and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("scheduler stopped")
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out")
	}
}

// Entries returns the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
