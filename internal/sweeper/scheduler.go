package sweeper

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/freshmart-id/freshmart-backend/pkg/config"
	"github.com/freshmart-id/freshmart-backend/pkg/logger"
	"github.com/freshmart-id/freshmart-backend/pkg/metrics"
	"github.com/freshmart-id/freshmart-backend/pkg/redis"
)

// Scheduler drives each registered job on its own ticker. A per-job redis
// lock keeps concurrent sweeper replicas from sweeping the same batch twice.
type Scheduler struct {
	logg    *logger.Logger
	lock    redis.Locker
	metrics *metrics.SweeperMetrics
	lockTTL time.Duration
	jitter  time.Duration
	jobs    []Job
}

type SchedulerParams struct {
	Logger  *logger.Logger
	Lock    redis.Locker
	Metrics *metrics.SweeperMetrics
	Config  config.SweeperConfig
	Jobs    []Job
}

// NewScheduler builds the sweeper loop. The lock may be nil in single
// instance deployments and tests; jobs then run unguarded.
func NewScheduler(params SchedulerParams) (*Scheduler, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if len(params.Jobs) == 0 {
		return nil, fmt.Errorf("at least one job required")
	}
	lockTTL := params.Config.LockTTL
	if lockTTL <= 0 {
		lockTTL = 10 * time.Minute
	}
	return &Scheduler{
		logg:    params.Logger,
		lock:    params.Lock,
		metrics: params.Metrics,
		lockTTL: lockTTL,
		jitter:  params.Config.Jitter,
		jobs:    params.Jobs,
	}, nil
}

// Run blocks until the context is canceled. Each job gets its own goroutine
// so a slow expiry sweep never delays auto-confirmation.
func (s *Scheduler) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, job := range s.jobs {
		wg.Add(1)
		go func(job Job) {
			defer wg.Done()
			s.runLoop(ctx, job)
		}(job)
	}
	wg.Wait()
	return ctx.Err()
}

func (s *Scheduler) runLoop(ctx context.Context, job Job) {
	ticker := time.NewTicker(job.Interval())
	defer ticker.Stop()

	jobCtx := s.logg.WithField(ctx, "job", job.Name())
	s.logg.Info(jobCtx, "sweeper job scheduled")

	for {
		select {
		case <-ctx.Done():
			s.logg.Info(jobCtx, "sweeper job stopped")
			return
		case <-ticker.C:
			s.sleepJitter(ctx)
			s.RunJobOnce(ctx, job)
		}
	}
}

// sleepJitter staggers replicas that tick at the same instant.
func (s *Scheduler) sleepJitter(ctx context.Context) {
	if s.jitter <= 0 {
		return
	}
	delay := time.Duration(rand.Int63n(int64(s.jitter)))
	select {
	case <-ctx.Done():
	case <-time.After(delay):
	}
}

// RunJobOnce executes a single guarded sweep. Exported so commands can force
// an immediate run on startup.
func (s *Scheduler) RunJobOnce(ctx context.Context, job Job) {
	jobCtx := s.logg.WithField(ctx, "job", job.Name())

	if s.lock != nil {
		key := s.lock.LockKey(job.Name())
		acquired, err := s.lock.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), s.lockTTL)
		if err != nil {
			s.logg.Error(jobCtx, "sweeper lock acquire failed", err)
			return
		}
		if !acquired {
			s.logg.Info(jobCtx, "another sweeper holds the lock; skipping")
			return
		}
		defer func() {
			if err := s.lock.Del(ctx, key); err != nil {
				s.logg.Error(jobCtx, "sweeper lock release failed", err)
			}
		}()
	}

	start := time.Now()
	processed, err := job.Run(jobCtx)
	duration := time.Since(start)

	s.metrics.ObserveDuration(job.Name(), duration)
	s.metrics.AddProcessed(job.Name(), processed)

	jobCtx = s.logg.WithField(jobCtx, "processed", processed)
	jobCtx = s.logg.WithField(jobCtx, "duration_ms", duration.Milliseconds())
	if err != nil {
		s.metrics.IncFailure(job.Name())
		s.logg.Error(jobCtx, "sweep finished with failures", err)
		return
	}
	s.metrics.IncSuccess(job.Name())
	s.logg.Info(jobCtx, "sweep complete")
}
