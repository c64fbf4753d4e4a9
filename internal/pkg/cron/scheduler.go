// Package cron is a minimal in-process scheduler: interval jobs plus jobs
// pinned to a local wall-clock time. Enough for the attendance sweeps; no
// external scheduler dependency.
package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type JobFunc func(ctx context.Context) error

type job struct {
	name string
	fn   JobFunc
	// next returns the wait until the following run.
	next func(now time.Time) time.Duration
}

type Scheduler struct {
	jobs   []job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	loc    *time.Location
}

func NewScheduler(loc *time.Location) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
		loc:    loc,
	}
}

// AddIntervalJob schedules fn every interval, first run after one interval.
func (s *Scheduler) AddIntervalJob(name string, interval time.Duration, fn JobFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job{
		name: name,
		fn:   fn,
		next: func(time.Time) time.Duration { return interval },
	})
	slog.Info("cron job registered", "name", name, "interval", interval)
}

// AddDailyJob schedules fn at the given local wall-clock time every day.
func (s *Scheduler) AddDailyJob(name string, hour, minute int, fn JobFunc) {
	loc := s.loc

	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job{
		name: name,
		fn:   fn,
		next: func(now time.Time) time.Duration {
			local := now.In(loc)
			run := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
			if !run.After(local) {
				run = run.AddDate(0, 0, 1)
			}
			return run.Sub(local)
		},
	})
	slog.Info("cron job registered", "name", name, "at", time.Date(0, 1, 1, hour, minute, 0, 0, loc).Format("15:04"))
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.run(j)
	}
	slog.Info("cron scheduler started", "job_count", len(s.jobs))
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("cron scheduler stopped")
}

func (s *Scheduler) run(j job) {
	defer s.wg.Done()

	for {
		timer := time.NewTimer(j.next(time.Now()))
		select {
		case <-s.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.execute(j)
		}
	}
}

func (s *Scheduler) execute(j job) {
	start := time.Now()
	if err := j.fn(s.ctx); err != nil {
		slog.Error("cron job failed", "name", j.name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("cron job completed", "name", j.name, "duration", time.Since(start))
}

// RunOnce executes every registered job a single time.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		if err := j.fn(ctx); err != nil {
			slog.Error("cron job failed", "name", j.name, "error", err)
		}
	}
}
