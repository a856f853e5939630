package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"ai-task-manager/config"
	pkgLog "ai-task-manager/pkg/log"
)

// Scheduler wraps cron-based jobs.
type Scheduler struct {
	cron *cron.Cron
	l    pkgLog.Logger
}

// New creates a Scheduler whose daily specs are evaluated in loc.
func New(loc *time.Location, l pkgLog.Logger) *Scheduler {
	cl := cronLogger{l: l}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		l: l,
	}
}

// ScheduleDaily registers job to run every day at clock ("HH:MM").
// Each run gets its own context bounded by timeout.
func (s *Scheduler) ScheduleDaily(name, clock string, timeout time.Duration, job func(ctx context.Context) error) (cron.EntryID, error) {
	spec, err := buildDailySpec(clock)
	if err != nil {
		return 0, err
	}

	return s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		if err := job(ctx); err != nil {
			s.l.Errorf(ctx, "scheduler: job %s failed after %s: %v", name, time.Since(start), err)
			return
		}
		s.l.Infof(ctx, "scheduler: job %s done in %s", name, time.Since(start))
	})
}

// Next returns the next activation time of the given entry.
func (s *Scheduler) Next(id cron.EntryID) time.Time {
	return s.cron.Entry(id).Next
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.l.Warnf(ctx, "scheduler: stop timed out with jobs still running")
	}
}

// buildDailySpec turns "HH:MM" into a seconds-enabled cron spec.
func buildDailySpec(clock string) (string, error) {
	hour, minute, err := config.ParseClock(clock)
	if err != nil {
		return "", err
	}
	// cron format: second minute hour dom month dow
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}

// cronLogger adapts pkg/log to cron.Logger.
type cronLogger struct {
	l pkgLog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugf(context.Background(), "cron: %s %v", msg, keysAndValues)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorf(context.Background(), "cron: %s: %v %v", msg, err, keysAndValues)
}
