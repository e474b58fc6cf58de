// Package jobs runs scheduled maintenance work alongside the API.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the unverified-account sweep at the top of every hour.
const DefaultSweepSchedule = "@hourly"

// Sweeper removes expired unverified accounts and reports how many went.
type Sweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

// cronLogger adapts slog to cron's logger interface.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

// Scheduler owns the cron runner.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	timeout time.Duration
}

// NewScheduler returns a Scheduler whose jobs never overlap themselves and
// recover from panics.
func NewScheduler(logger *slog.Logger) *Scheduler {
	cl := cronLogger{l: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger:  logger,
		timeout: 5 * time.Minute,
	}
}

// AddSweep registers s on schedule. An empty schedule uses DefaultSweepSchedule;
// "off" disables the job.
func (s *Scheduler) AddSweep(schedule string, sweeper Sweeper) error {
	if schedule == "off" {
		s.logger.Info("scheduled sweep disabled")
		return nil
	}
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	_, err := s.cron.AddFunc(schedule, func() { s.runSweep(sweeper) })
	if err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	s.logger.Info("scheduled sweep registered", slog.String("schedule", schedule))
	return nil
}

func (s *Scheduler) runSweep(sweeper Sweeper) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	deleted, err := sweeper.SweepExpired(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "scheduled sweep failed", slog.String("error", err.Error()))
	}
	s.logger.InfoContext(ctx, "scheduled sweep finished",
		slog.Int("deleted", deleted),
		slog.Duration("duration", time.Since(start)),
	)
}

// Entries reports how many jobs are registered.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out")
	}
}
