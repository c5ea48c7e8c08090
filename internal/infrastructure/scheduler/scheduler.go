package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a named piece of work that runs on a fixed interval
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler runs registered jobs on their intervals. Each tick is claimed
// through the run ledger first so that only one instance executes it.
type Scheduler struct {
	jobs       []Job
	ledger     RunLedger
	jobTimeout time.Duration
	logger     *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewScheduler creates a scheduler over the given ledger
func NewScheduler(ledger RunLedger, jobTimeout time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		ledger:     ledger,
		jobTimeout: jobTimeout,
		logger:     logger.Named("scheduler"),
	}
}

// Register adds a job. Must be called before Start.
func (s *Scheduler) Register(job Job) {
	s.jobs = append(s.jobs, job)
}

// Start launches one loop per registered job
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runLoop(ctx, job)

		s.logger.Info("Job scheduled",
			zap.String("job", job.Name),
			zap.Duration("interval", job.Interval),
		)
	}
}

// Stop cancels all job loops and waits for in-flight runs to finish
// or the context to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *Scheduler) runLoop(ctx context.Context, job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, job)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, job Job) {
	acquired, err := s.ledger.TryAcquire(ctx, job.Name, job.Interval)
	if err != nil {
		s.logger.Error("Failed to claim run slot",
			zap.String("job", job.Name),
			zap.Error(err),
		)
		return
	}
	if !acquired {
		s.logger.Debug("Run claimed by another instance", zap.String("job", job.Name))
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, s.jobTimeout)
	defer cancel()

	start := time.Now()
	if err := job.Run(runCtx); err != nil {
		s.logger.Error("Job failed",
			zap.String("job", job.Name),
			zap.Time("started_at", start),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Job completed",
		zap.String("job", job.Name),
		zap.Duration("elapsed", time.Since(start)),
	)
}
