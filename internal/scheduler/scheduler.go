// Package scheduler triggers the scheduled-operations processor on a fixed interval.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/14kear/csi-portal/internal/metrics"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
	"github.com/robfig/cron/v3"
)

type Runner interface {
	ProcessDue(ctx context.Context) (int, error)
}

type Scheduler struct {
	log     *slog.Logger
	runner  Runner
	cron    *cron.Cron
	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(log *slog.Logger, runner Runner, interval time.Duration) (*Scheduler, error) {
	const op = "scheduler.New"

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		log:    log,
		runner: runner,
		cron:   cron.New(cron.WithChain(cron.Recover(cronLogger{log}))),
		ctx:    ctx,
		cancel: cancel,
	}

	if _, err := s.cron.AddFunc("@every "+interval.String(), s.Tick); err != nil {
		cancel()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop prevents new ticks, cancels the current run and waits for it to return.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	s.cancel()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	s.log.Info("scheduler stopped")
}

// Tick processes due operations unless the previous tick is still running.
func (s *Scheduler) Tick() {
	const op = "scheduler.Tick"

	if !s.running.CompareAndSwap(false, true) {
		metrics.SchedulerRuns.WithLabelValues("skipped").Inc()
		s.log.Warn("previous run still in progress, skipping", slog.String("op", op))
		return
	}
	defer s.running.Store(false)

	n, err := s.runner.ProcessDue(s.ctx)
	if err != nil {
		metrics.SchedulerRuns.WithLabelValues("error").Inc()
		s.log.Error("scheduled run failed", slog.String("op", op), sl.Err(err))
		return
	}
	metrics.SchedulerRuns.WithLabelValues("processed").Inc()
	if n > 0 {
		s.log.Info("scheduled operations processed", slog.String("op", op), slog.Int("count", n))
	}
}

// cronLogger adapts slog to the cron.Logger interface.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, append(keysAndValues, sl.Err(err))...)
}
